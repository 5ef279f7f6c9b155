// Package gamedata holds the simulator's reference tables: raw resources,
// buildings and their material costs, items and crafting recipes. The replay
// viewer only reads it to put names on ids.
package gamedata

import "sort"

// Resource is a raw material kind.
type Resource struct {
	ID   int
	Name string
}

// ResourcePointType describes what a class of resource point yields.
type ResourcePointType struct {
	ID             int
	ResourceType   string
	GenerationRate int
}

// Building is a constructible building kind.
type Building struct {
	ID               int
	Name             string
	ConstructionTime int
}

// Material is one line of a building's bill of materials.
type Material struct {
	BuildingID int
	ItemID     int
	Quantity   int
}

// Item is anything that can sit in storage. BuildingRequired is the id of
// the building needed to craft it, 0 for raw or freely crafted items.
type Item struct {
	ID               int
	Name             string
	BuildingRequired int
}

// CraftingRow is one row of the crafting table. Each recipe has exactly one
// product row followed by its material rows; unused quantities are -1.
type CraftingRow struct {
	CraftingID       int
	Product          bool
	ItemID           int
	QuantityRequired int
	QuantityProduced int
	ProductionTime   int
}

// Ingredient is a material consumed by a recipe.
type Ingredient struct {
	ItemID   int
	Quantity int
}

// Recipe is the product of one crafting id and what it consumes.
type Recipe struct {
	ID             int
	ItemID         int
	Produced       int
	ProductionTime int
	Inputs         []Ingredient
}

// Catalog is the full set of reference tables. Treat it as read-only once
// built; lookups are served from indexes built by index().
type Catalog struct {
	Resources      []Resource
	ResourcePoints []ResourcePointType
	Buildings      []Building
	Materials      []Material
	Items          []Item
	Crafting       []CraftingRow

	itemByID     map[int]int
	buildingByID map[int]int
	recipes      map[int]Recipe // keyed by product item id
}

// index rebuilds the lookup maps. Called by every constructor.
func (c *Catalog) index() *Catalog {
	c.itemByID = make(map[int]int, len(c.Items))
	for i, it := range c.Items {
		c.itemByID[it.ID] = i
	}
	c.buildingByID = make(map[int]int, len(c.Buildings))
	for i, b := range c.Buildings {
		c.buildingByID[b.ID] = i
	}

	byCraft := map[int]*Recipe{}
	var order []int
	for _, row := range c.Crafting {
		r, ok := byCraft[row.CraftingID]
		if !ok {
			r = &Recipe{ID: row.CraftingID}
			byCraft[row.CraftingID] = r
			order = append(order, row.CraftingID)
		}
		if row.Product {
			r.ItemID = row.ItemID
			r.Produced = row.QuantityProduced
			r.ProductionTime = row.ProductionTime
			continue
		}
		r.Inputs = append(r.Inputs, Ingredient{ItemID: row.ItemID, Quantity: row.QuantityRequired})
	}
	c.recipes = make(map[int]Recipe, len(byCraft))
	for _, id := range order {
		r := byCraft[id]
		if r.ItemID != 0 {
			c.recipes[r.ItemID] = *r
		}
	}
	return c
}

// ItemName returns the display name of an item id.
func (c *Catalog) ItemName(id int) (string, bool) {
	i, ok := c.itemByID[id]
	if !ok {
		return "", false
	}
	return c.Items[i].Name, true
}

// BuildingName returns the display name of a building id.
func (c *Catalog) BuildingName(id int) (string, bool) {
	i, ok := c.buildingByID[id]
	if !ok {
		return "", false
	}
	return c.Buildings[i].Name, true
}

// Recipe returns the recipe producing item id.
func (c *Catalog) Recipe(itemID int) (Recipe, bool) {
	r, ok := c.recipes[itemID]
	return r, ok
}

// MaterialsFor returns the bill of materials of a building, in table order.
func (c *Catalog) MaterialsFor(buildingID int) []Material {
	var out []Material
	for _, m := range c.Materials {
		if m.BuildingID == buildingID {
			out = append(out, m)
		}
	}
	return out
}

// RecipeItems returns the ids of every craftable item, ascending.
func (c *Catalog) RecipeItems() []int {
	ids := make([]int, 0, len(c.recipes))
	for id := range c.recipes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
