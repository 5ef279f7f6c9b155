package gamedata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoDatabase is returned by Open when the database file does not exist.
var ErrNoDatabase = errors.New("gamedata: database not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS Resources (
		resource_id INTEGER PRIMARY KEY,
		resource_name TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS ResourcePoints (
		resource_point_id INTEGER PRIMARY KEY,
		resource_type TEXT,
		generation_rate INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS Buildings (
		building_id INTEGER PRIMARY KEY,
		building_name TEXT,
		construction_time INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS BuildingMaterials (
		building_id INTEGER,
		material_id INTEGER,
		material_quantity INTEGER,
		FOREIGN KEY(building_id) REFERENCES Buildings(building_id)
	);`,
	`CREATE TABLE IF NOT EXISTS Items (
		item_id INTEGER PRIMARY KEY,
		item_name TEXT,
		building_required INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS Crafting (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crafting_id INTEGER,
		material_or_product INTEGER,
		item_id INTEGER,
		quantity_required INTEGER,
		quantity_produced INTEGER,
		production_time INTEGER
	);`,
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open loads a catalog from the SQLite database at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, err
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	c := &Catalog{}
	if err := queryRows(ctx, db, `SELECT resource_id, resource_name FROM Resources ORDER BY resource_id`, func(rows *sql.Rows) error {
		var r Resource
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return err
		}
		c.Resources = append(c.Resources, r)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Resources: %w", err)
	}
	if err := queryRows(ctx, db, `SELECT resource_point_id, resource_type, generation_rate FROM ResourcePoints ORDER BY resource_point_id`, func(rows *sql.Rows) error {
		var r ResourcePointType
		if err := rows.Scan(&r.ID, &r.ResourceType, &r.GenerationRate); err != nil {
			return err
		}
		c.ResourcePoints = append(c.ResourcePoints, r)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("ResourcePoints: %w", err)
	}
	if err := queryRows(ctx, db, `SELECT building_id, building_name, construction_time FROM Buildings ORDER BY building_id`, func(rows *sql.Rows) error {
		var b Building
		if err := rows.Scan(&b.ID, &b.Name, &b.ConstructionTime); err != nil {
			return err
		}
		c.Buildings = append(c.Buildings, b)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Buildings: %w", err)
	}
	if err := queryRows(ctx, db, `SELECT building_id, material_id, material_quantity FROM BuildingMaterials ORDER BY rowid`, func(rows *sql.Rows) error {
		var m Material
		if err := rows.Scan(&m.BuildingID, &m.ItemID, &m.Quantity); err != nil {
			return err
		}
		c.Materials = append(c.Materials, m)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("BuildingMaterials: %w", err)
	}
	if err := queryRows(ctx, db, `SELECT item_id, item_name, building_required FROM Items ORDER BY item_id`, func(rows *sql.Rows) error {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.BuildingRequired); err != nil {
			return err
		}
		c.Items = append(c.Items, it)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Items: %w", err)
	}
	if err := queryRows(ctx, db, `SELECT crafting_id, material_or_product, item_id, quantity_required, quantity_produced, production_time FROM Crafting ORDER BY id`, func(rows *sql.Rows) error {
		var row CraftingRow
		var product int
		if err := rows.Scan(&row.CraftingID, &product, &row.ItemID, &row.QuantityRequired, &row.QuantityProduced, &row.ProductionTime); err != nil {
			return err
		}
		row.Product = product == 1
		c.Crafting = append(c.Crafting, row)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Crafting: %w", err)
	}
	return c.index(), nil
}

func queryRows(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Seed creates the schema at path (and any missing parent directories) and
// inserts every row of cat. Keyed rows use INSERT OR IGNORE; the crafting
// rows of each recipe id are replaced, so seeding twice leaves one copy.
func Seed(ctx context.Context, path string, cat *Catalog) error {
	if path == "" {
		return fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}
	for _, r := range cat.Resources {
		if err := exec(`INSERT OR IGNORE INTO Resources (resource_id, resource_name) VALUES (?, ?)`, r.ID, r.Name); err != nil {
			return fmt.Errorf("Resources: %w", err)
		}
	}
	for _, r := range cat.ResourcePoints {
		if err := exec(`INSERT OR IGNORE INTO ResourcePoints (resource_point_id, resource_type, generation_rate) VALUES (?, ?, ?)`, r.ID, r.ResourceType, r.GenerationRate); err != nil {
			return fmt.Errorf("ResourcePoints: %w", err)
		}
	}
	for _, b := range cat.Buildings {
		if err := exec(`INSERT OR IGNORE INTO Buildings (building_id, building_name, construction_time) VALUES (?, ?, ?)`, b.ID, b.Name, b.ConstructionTime); err != nil {
			return fmt.Errorf("Buildings: %w", err)
		}
	}
	// BuildingMaterials has no key, so replace it wholesale per building.
	seen := map[int]bool{}
	for _, m := range cat.Materials {
		if !seen[m.BuildingID] {
			seen[m.BuildingID] = true
			if err := exec(`DELETE FROM BuildingMaterials WHERE building_id = ?`, m.BuildingID); err != nil {
				return fmt.Errorf("BuildingMaterials: %w", err)
			}
		}
		if err := exec(`INSERT INTO BuildingMaterials (building_id, material_id, material_quantity) VALUES (?, ?, ?)`, m.BuildingID, m.ItemID, m.Quantity); err != nil {
			return fmt.Errorf("BuildingMaterials: %w", err)
		}
	}
	for _, it := range cat.Items {
		if err := exec(`INSERT OR IGNORE INTO Items (item_id, item_name, building_required) VALUES (?, ?, ?)`, it.ID, it.Name, it.BuildingRequired); err != nil {
			return fmt.Errorf("Items: %w", err)
		}
	}
	seen = map[int]bool{}
	for _, row := range cat.Crafting {
		if !seen[row.CraftingID] {
			seen[row.CraftingID] = true
			if err := exec(`DELETE FROM Crafting WHERE crafting_id = ?`, row.CraftingID); err != nil {
				return fmt.Errorf("Crafting: %w", err)
			}
		}
		product := 0
		if row.Product {
			product = 1
		}
		if err := exec(`INSERT INTO Crafting (crafting_id, material_or_product, item_id, quantity_required, quantity_produced, production_time) VALUES (?, ?, ?, ?, ?, ?)`,
			row.CraftingID, product, row.ItemID, row.QuantityRequired, row.QuantityProduced, row.ProductionTime); err != nil {
			return fmt.Errorf("Crafting: %w", err)
		}
	}
	return tx.Commit()
}
