package model

import "github.com/shopspring/decimal"

// SampleCategories are inserted on an empty database.
func SampleCategories() []Category {
	return []Category{
		{Name: "Herramientas Manuales", Description: "Herramientas que no requieren electricidad"},
		{Name: "Herramientas Eléctricas", Description: "Herramientas que requieren electricidad"},
		{Name: "Materiales de Construcción", Description: "Materiales para construcción y reparación"},
	}
}

// SampleProduct carries the index into SampleCategories instead of an ID,
// since IDs are only known after insert.
type SampleProduct struct {
	Product       Product
	CategoryIndex int
}

func SampleProducts() []SampleProduct {
	return []SampleProduct{
		{Product{Name: "Martillo", Description: "Martillo de acero 500g", Price: decimal.RequireFromString("25.50"), Stock: 15}, 0},
		{Product{Name: "Destornillador Phillips", Description: "Destornillador Phillips #2", Price: decimal.RequireFromString("12.75"), Stock: 25}, 0},
		{Product{Name: "Taladro Eléctrico", Description: "Taladro eléctrico 600W", Price: decimal.RequireFromString("89.90"), Stock: 8}, 1},
		{Product{Name: "Tornillos", Description: "Tornillos para madera 3x25mm (100 unidades)", Price: decimal.RequireFromString("8.50"), Stock: 50}, 2},
	}
}

func SampleBranches() []Branch {
	return []Branch{
		{Name: "Sucursal Centro", Address: "Av. Principal 123, Santiago Centro", Phone: "22-123-4567", Email: "centro@ferreteria.cl", Active: true},
		{Name: "Sucursal Las Condes", Address: "Av. Apoquindo 456, Las Condes", Phone: "22-234-5678", Email: "lascondes@ferreteria.cl", Active: true},
		{Name: "Sucursal Maipú", Address: "Av. Pajaritos 789, Maipú", Phone: "22-345-6789", Email: "maipu@ferreteria.cl", Active: true},
	}
}

func SampleCustomers() []Customer {
	return []Customer{
		{Name: "Juan Pérez", Email: "juan.perez@email.com", Phone: "9-8765-4321", Address: "Calle Falsa 123"},
		{Name: "María González", Email: "maria.gonzalez@email.com", Phone: "9-7654-3210", Address: "Av. Siempre Viva 456"},
	}
}
