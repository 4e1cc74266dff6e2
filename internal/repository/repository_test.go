package repository

import (
	"context"
	"testing"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, NewCategoryRepo(db).Create(context.Background(), category))
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name, description string, categoryID *uint) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString("25.50"),
		Stock:       10,
		CategoryID:  categoryID,
	}
	require.NoError(t, NewProductRepo(db).Create(context.Background(), product))
	return product
}

func TestProductRepoFindAllFilters(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewProductRepo(db)

	tools := seedCategory(t, db, "Herramientas")
	seedProduct(t, db, "Martillo", "Martillo de carpintero", &tools.ID)
	seedProduct(t, db, "Destornillador", "Punta PHILLIPS", &tools.ID)
	seedProduct(t, db, "Pintura", "Latex blanco", nil)

	all, err := repo.FindAll(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Martillo", all[0].Name)
	require.NotNil(t, all[0].Category)
	assert.Equal(t, "Herramientas", all[0].Category.Name)
	assert.Nil(t, all[2].Category)

	matched, err := repo.FindAll(ctx, ProductFilter{Search: "phillips"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Destornillador", matched[0].Name)

	byCategory, err := repo.FindAll(ctx, ProductFilter{CategoryID: &tools.ID, Search: "MART"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Martillo", byCategory[0].Name)
}

func TestProductRepoSearchIsLiteral(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewProductRepo(db)

	seedProduct(t, db, "Martillo", "Martillo de carpintero", nil)
	seedProduct(t, db, "Disco corte", "Descuento 10% en caja", nil)
	seedProduct(t, db, "Cable_UTP", `Ruta C:\red`, nil)

	cases := []struct {
		search string
		want   []string
	}{
		{"%", []string{"Disco corte"}},
		{"10%", []string{"Disco corte"}},
		{"_", []string{"Cable_UTP"}},
		{`c:\`, []string{"Cable_UTP"}},
		{"m_rtillo", nil},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			products, err := repo.FindAll(ctx, ProductFilter{Search: tc.search})
			require.NoError(t, err)
			var names []string
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestProductRepoUpdateStock(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewProductRepo(db)
	product := seedProduct(t, db, "Martillo", "", nil)

	require.NoError(t, repo.UpdateStock(ctx, product.ID, 3))
	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
	assert.True(t, decimal.RequireFromString("25.5").Equal(got.Price))

	err = repo.UpdateStock(ctx, product.ID+100, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(ctx, product.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepoUniqueEmail(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewCustomerRepo(db)

	require.NoError(t, repo.Create(ctx, &model.Customer{Name: "Ana", Email: "ana@example.com"}))

	found, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.Name)

	missing, err := repo.FindByEmail(ctx, "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(ctx, &model.Customer{Name: "Otra Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBranchRepoKeepsExplicitInactive(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewBranchRepo(db)

	active := &model.Branch{Name: "Centro", Address: "Av. Central 1", Active: true}
	inactive := &model.Branch{Name: "Norte", Address: "Calle Norte 2", Active: false}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	found, err := repo.FindByIDs(ctx, active.ID, inactive.ID, 999)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.True(t, found[active.ID].Active)
	assert.False(t, found[inactive.ID].Active)
}
