package gamedata

// Default returns the built-in reference tables the simulator ships with.
// Every call returns a fresh copy.
func Default() *Catalog {
	c := &Catalog{
		Resources: []Resource{
			{1, "Log"}, {2, "Stone"}, {3, "Sand"}, {4, "IronOre"},
		},
		ResourcePoints: []ResourcePointType{
			{1, "Log", 2}, {2, "Stone", 2}, {3, "Sand", 2}, {4, "IronOre", 2},
		},
		Buildings: []Building{
			{1, "WoodenHut", 10},
			{2, "SmeltingHut", 15},
			{3, "BlacksmithHut", 12},
			{4, "CarpenterHut", 12},
			{5, "GlassHut", 14},
			{6, "CozyHut", 20},
			{256, "Storage", 0},
		},
		Materials: []Material{
			{1, 5, 20},
			{2, 2, 48},
			{3, 6, 1},
			{3, 2, 44},
			{4, 5, 55},
			{4, 8, 5},
			{5, 8, 10},
			{5, 2, 60},
			{6, 5, 128},
			{6, 8, 30},
			{6, 10, 28},
			{6, 9, 32},
		},
		Items: []Item{
			{1, "Log", 0},
			{2, "Stone", 0},
			{3, "Sand", 0},
			{4, "IronOre", 0},
			{5, "WoodenPlanks", 0},
			{6, "Anvil", 2},
			{7, "IronIngot", 2},
			{8, "IronTools", 3},
			{9, "Glass", 5},
			{10, "SolidWoodFurniture", 4},
		},
		Crafting: []CraftingRow{
			{1, true, 5, -1, 4, 5},
			{1, false, 1, 1, -1, -1},

			{2, true, 6, -1, 1, 10},
			{2, false, 4, 20, -1, -1},

			{3, true, 7, -1, 1, 8},
			{3, false, 4, 2, -1, -1},

			{4, true, 8, -1, 1, 12},
			{4, false, 7, 2, -1, -1},
			{4, false, 1, 1, -1, -1},

			{5, true, 9, -1, 4, 8},
			{5, false, 3, 1, -1, -1},

			{6, true, 10, -1, 1, 15},
			{6, false, 5, 5, -1, -1},
			{6, false, 1, 1, -1, -1},
		},
	}
	return c.index()
}
