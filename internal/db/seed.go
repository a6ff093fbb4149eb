package db

import (
	"context"
	"database/sql"
	"fmt"

	"laundry-be/internal/auth"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type seedUser struct {
	id, username, email, password, role, fullName, phone, address string
}

type seedService struct {
	id, name    string
	price       int64
	unit        string
	category    string
	icon        string
	description string
}

type seedInventory struct {
	id, code, name            string
	stock                     int64
	unit                      string
	minStock                  int64
	supplier, supplierContact string
	price                     int64
	category                  string
}

type seedMaterial struct {
	id, serviceID, inventoryID string
	quantity                   string
	unit                       string
}

var seedUsers = []seedUser{
	{"U-ADMIN-001", "admin", "admin@laundry.com", "admin123", "admin", "Administrator", "081234567890", ""},
	{"U-PELANGGAN-001", "testing", "testing@customer.com", "pelanggan123", "customer", "Software Testing", "081234567890", "Jl. Test No. 123"},
}

var seedServices = []seedService{
	{"SV-001", "Cuci Komplit", 7000, "kg", "kiloan", "washing-machine", "Cuci + Gosok + Parfum"},
	{"SV-002", "Setrika Saja", 4000, "kg", "kiloan", "iron", "Gosok + Parfum"},
	{"SV-003", "Cuci Saja", 5000, "kg", "kiloan", "droplet", "Hanya Cuci"},
	{"SV-004", "Bed Cover Single", 15000, "pcs", "satuan", "bed", "Ukuran Single/Twin"},
	{"SV-005", "Bed Cover King", 25000, "pcs", "satuan", "bed", "Ukuran Queen/King"},
	{"SV-006", "Jas / Blazer", 20000, "pcs", "satuan", "shirt", "Dry Clean Profesional"},
	{"SV-007", "Boneka Medium", 10000, "pcs", "satuan", "bear", "Tinggi maksimal 50cm"},
	{"SV-008", "Express 3 Jam", 15000, "kg", "express", "timer", "Selesai dalam 3 jam"},
	{"SV-009", "Karpet Tebal", 15000, "m2", "satuan", "package", "Cuci Deep Clean"},
	{"SV-010", "Sepatu Sneakers", 25000, "pcs", "satuan", "boot", "Deep Cleaning + Treatment"},
}

var seedInventoryItems = []seedInventory{
	{"INV-001", "DTRG-BBP", "Detergen Bubuk Premium", 50, "kg", 10, "Supplier A", "081111111111", 25000, "Bahan Cuci"},
	{"INV-002", "DTRG-CCT", "Detergen Cair Konsentrat", 30, "liter", 5, "Supplier B", "082222222222", 35000, "Bahan Cuci"},
	{"INV-003", "PLMBT-PKN", "Pelembut Pakaian", 25, "liter", 5, "Supplier A", "081111111111", 20000, "Bahan Cuci"},
	{"INV-004", "PMT-PKN", "Pemutih Pakaian", 20, "liter", 5, "Supplier C", "083333333333", 18000, "Bahan Cuci"},
	{"INV-005", "PRFM-LND", "Parfum Laundry Premium", 15, "liter", 3, "Supplier B", "082222222222", 45000, "Bahan Cuci"},
	{"INV-006", "DRY-SOLV", "Dry Clean Solvent", 40, "liter", 10, "Supplier D", "084444444444", 60000, "Bahan Cuci"},
	{"INV-007", "SHMP-KRP", "Shampoo Karpet", 18, "liter", 5, "Supplier C", "083333333333", 28000, "Bahan Cuci"},
	{"INV-008", "SHOE-CLN", "Shoe Cleaner & Protector", 25, "pcs", 5, "Supplier E", "085555555555", 15000, "Bahan Cuci"},
	{"INV-009", "STRK-UAP", "Setrika Uap (Air)", 100, "liter", 20, "Supplier A", "081111111111", 5000, "Bahan Cuci"},
	{"INV-010", "STRCH-KNJ", "Starch / Kanji", 15, "kg", 3, "Supplier B", "082222222222", 12000, "Bahan Cuci"},
}

// Quantities are per unit of service (kg, pcs, m2).
var seedMaterials = []seedMaterial{
	// Cuci Komplit
	{"SM-001", "SV-001", "INV-001", "0.05", "kg"},
	{"SM-002", "SV-001", "INV-003", "0.03", "liter"},
	{"SM-003", "SV-001", "INV-005", "0.02", "liter"},
	{"SM-004", "SV-001", "INV-009", "0.1", "liter"},
	{"SM-005", "SV-001", "INV-010", "0.01", "kg"},
	// Setrika Saja
	{"SM-006", "SV-002", "INV-009", "0.15", "liter"},
	{"SM-007", "SV-002", "INV-005", "0.02", "liter"},
	{"SM-008", "SV-002", "INV-010", "0.02", "kg"},
	// Cuci Saja
	{"SM-009", "SV-003", "INV-001", "0.05", "kg"},
	{"SM-010", "SV-003", "INV-003", "0.03", "liter"},
	// Bed Cover Single
	{"SM-011", "SV-004", "INV-001", "0.15", "kg"},
	{"SM-012", "SV-004", "INV-003", "0.1", "liter"},
	{"SM-013", "SV-004", "INV-005", "0.05", "liter"},
	{"SM-014", "SV-004", "INV-009", "0.3", "liter"},
	// Bed Cover King
	{"SM-015", "SV-005", "INV-001", "0.25", "kg"},
	{"SM-016", "SV-005", "INV-003", "0.15", "liter"},
	{"SM-017", "SV-005", "INV-005", "0.08", "liter"},
	{"SM-018", "SV-005", "INV-009", "0.5", "liter"},
	// Jas / Blazer
	{"SM-019", "SV-006", "INV-006", "0.5", "liter"},
	{"SM-020", "SV-006", "INV-009", "0.2", "liter"},
	{"SM-021", "SV-006", "INV-010", "0.05", "kg"},
	// Boneka Medium
	{"SM-022", "SV-007", "INV-001", "0.1", "kg"},
	{"SM-023", "SV-007", "INV-003", "0.05", "liter"},
	{"SM-024", "SV-007", "INV-005", "0.03", "liter"},
	// Express 3 Jam
	{"SM-025", "SV-008", "INV-002", "0.08", "liter"},
	{"SM-026", "SV-008", "INV-003", "0.04", "liter"},
	{"SM-027", "SV-008", "INV-005", "0.03", "liter"},
	{"SM-028", "SV-008", "INV-009", "0.12", "liter"},
	// Karpet Tebal
	{"SM-029", "SV-009", "INV-007", "0.2", "liter"},
	{"SM-030", "SV-009", "INV-001", "0.1", "kg"},
	{"SM-031", "SV-009", "INV-004", "0.05", "liter"},
	// Sepatu Sneakers
	{"SM-032", "SV-010", "INV-008", "1", "pcs"},
	{"SM-033", "SV-010", "INV-001", "0.05", "kg"},
}

// Seed inserts the initial dataset when the users table is empty. It is a
// no-op on any database that already has users.
func Seed(ctx context.Context, db *sql.DB) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "seed"))

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Debug("database already seeded", zap.Int("users", count))
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				log.Error("failed to rollback seed", zap.Error(rbErr))
			}
		}
	}()

	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		var address any
		if u.address != "" {
			address = u.address
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, username, email, password, role, full_name, phone, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, u.id, u.username, u.email, hash, u.role, u.fullName, u.phone, address)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.id, err)
		}
	}

	for _, s := range seedServices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO services (id, name, price, unit, category, icon, description, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.id, s.name, s.price, s.unit, s.category, s.icon, s.description, true)
		if err != nil {
			return fmt.Errorf("seed service %s: %w", s.id, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO members (id, name, phone, avatar, join_date, expiry_date, points, total_spend, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, "M-TEST-001", "Software Testing", "081234567890",
		"https://api.dicebear.com/7.x/initials/svg?seed=ST", "2025-12-03", "2026-12-03", 0, 0, true)
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}

	for _, it := range seedInventoryItems {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inventory (id, code, name, stock, unit, min_stock, supplier, supplier_contact, price, category, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, it.id, it.code, it.name, it.stock, it.unit, it.minStock, it.supplier, it.supplierContact, it.price, it.category, true)
		if err != nil {
			return fmt.Errorf("seed inventory %s: %w", it.id, err)
		}
	}

	for _, m := range seedMaterials {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO service_materials (id, service_id, inventory_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)
		`, m.id, m.serviceID, m.inventoryID, m.quantity, m.unit)
		if err != nil {
			return fmt.Errorf("seed service material %s: %w", m.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	committed = true

	log.Info("database seeded",
		zap.Int("users", len(seedUsers)),
		zap.Int("services", len(seedServices)),
		zap.Int("inventory", len(seedInventoryItems)),
		zap.Int("service_materials", len(seedMaterials)),
	)
	return nil
}
