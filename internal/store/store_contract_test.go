package store

import (
	"context"
	"sort"

	perrors "github.com/andreastrap/productos/internal/errors"
	"github.com/andreastrap/productos/internal/store/db"
	"github.com/stretchr/testify/suite"
)

// productoStoreSuite holds the behaviour every ProductoStore implementation must share.
// Concrete suites embed it and set store and reset in SetupSuite.
type productoStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store ProductoStore
	reset func() error
}

func (s *productoStoreSuite) SetupTest() {
	s.Require().NoError(s.reset(), "Failed to reset productos table")
}

func (s *productoStoreSuite) seed(productos ...db.Producto) []db.Producto {
	saved := make([]db.Producto, 0, len(productos))
	for _, p := range productos {
		created, err := s.store.Save(s.ctx, p)
		s.Require().NoError(err)
		saved = append(saved, *created)
	}
	return saved
}

func nombres(productos []db.Producto) []string {
	out := make([]string, 0, len(productos))
	for _, p := range productos {
		out = append(out, p.Nombre)
	}
	return out
}

func (s *productoStoreSuite) TestSave_InsertAssignsID() {
	// when
	created, err := s.store.Save(s.ctx, db.Producto{Nombre: "Pan", Precio: 10})

	// then
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.Equal("Pan", created.Nombre)
	s.Equal(10.0, created.Precio)

	found, err := s.store.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(*created, *found)
}

func (s *productoStoreSuite) TestSave_UpdateExisting() {
	// given
	seeded := s.seed(db.Producto{Nombre: "Pan", Precio: 10})[0]

	// when
	updated, err := s.store.Save(s.ctx, db.Producto{ID: seeded.ID, Nombre: "Pan integral", Precio: 12.5})

	// then
	s.Require().NoError(err)
	s.Equal(db.Producto{ID: seeded.ID, Nombre: "Pan integral", Precio: 12.5}, *updated)

	found, err := s.store.FindByID(s.ctx, seeded.ID)
	s.Require().NoError(err)
	s.Equal(*updated, *found)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *productoStoreSuite) TestSave_UpdateMissing() {
	_, err := s.store.Save(s.ctx, db.Producto{ID: 9999, Nombre: "Fantasma", Precio: 1})
	s.ErrorIs(err, perrors.ErrProductoNotFound)
}

func (s *productoStoreSuite) TestFindByID_NotFound() {
	_, err := s.store.FindByID(s.ctx, 9999)
	s.ErrorIs(err, perrors.ErrProductoNotFound)
}

func (s *productoStoreSuite) TestFindAll() {
	// given
	s.seed(db.Producto{Nombre: "Pan", Precio: 10}, db.Producto{Nombre: "Leche", Precio: 5})

	// when
	all, err := s.store.FindAll(s.ctx)

	// then
	s.Require().NoError(err)
	got := nombres(all)
	sort.Strings(got)
	s.Equal([]string{"Leche", "Pan"}, got)
}

func (s *productoStoreSuite) TestFindAll_Empty() {
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *productoStoreSuite) TestDeleteByID() {
	// given
	seeded := s.seed(db.Producto{Nombre: "Pan", Precio: 10})[0]

	// when
	err := s.store.DeleteByID(s.ctx, seeded.ID)

	// then
	s.Require().NoError(err)
	exists, err := s.store.ExistsByID(s.ctx, seeded.ID)
	s.Require().NoError(err)
	s.False(exists)

	s.NoError(s.store.DeleteByID(s.ctx, seeded.ID), "deleting a missing id is not an error")
}

func (s *productoStoreSuite) TestExistsByID_And_Count() {
	// given
	seeded := s.seed(db.Producto{Nombre: "Pan", Precio: 10}, db.Producto{Nombre: "Leche", Precio: 5})

	// then
	exists, err := s.store.ExistsByID(s.ctx, seeded[0].ID)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.ExistsByID(s.ctx, 9999)
	s.Require().NoError(err)
	s.False(exists)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *productoStoreSuite) TestFindByNombreIgnoreCase() {
	// given
	s.seed(db.Producto{Nombre: "Pan", Precio: 10}, db.Producto{Nombre: "Pan integral", Precio: 12})

	// when
	found, err := s.store.FindByNombreIgnoreCase(s.ctx, "pAN")

	// then
	s.Require().NoError(err)
	s.Equal([]string{"Pan"}, nombres(found))
}

func (s *productoStoreSuite) TestFindByNombreContainingIgnoreCase() {
	// given
	s.seed(
		db.Producto{Nombre: "Pan", Precio: 10},
		db.Producto{Nombre: "Pan integral", Precio: 12},
		db.Producto{Nombre: "Leche", Precio: 5},
	)

	// when
	found, err := s.store.FindByNombreContainingIgnoreCase(s.ctx, "AN")

	// then
	s.Require().NoError(err)
	got := nombres(found)
	sort.Strings(got)
	s.Equal([]string{"Pan", "Pan integral"}, got)
}

func (s *productoStoreSuite) TestFindByNombreContainingIgnoreCase_WildcardsAreLiteral() {
	// given
	s.seed(
		db.Producto{Nombre: "Oferta 50% off", Precio: 1},
		db.Producto{Nombre: "Oferta 500 off", Precio: 1},
		db.Producto{Nombre: "a_b", Precio: 1},
		db.Producto{Nombre: "axb", Precio: 1},
		db.Producto{Nombre: `c\d`, Precio: 1},
	)

	testCases := []struct {
		search   string
		expected []string
	}{
		{search: "0%", expected: []string{"Oferta 50% off"}},
		{search: "a_b", expected: []string{"a_b"}},
		{search: `c\d`, expected: []string{`c\d`}},
		{search: "%", expected: []string{"Oferta 50% off"}},
	}
	for _, tc := range testCases {
		s.Run(tc.search, func() {
			found, err := s.store.FindByNombreContainingIgnoreCase(s.ctx, tc.search)
			s.Require().NoError(err)
			s.Equal(tc.expected, nombres(found))
		})
	}
}

func (s *productoStoreSuite) TestFindByPrecioBetween_Inclusive() {
	// given
	s.seed(
		db.Producto{Nombre: "Agua", Precio: 2},
		db.Producto{Nombre: "Leche", Precio: 5},
		db.Producto{Nombre: "Pan", Precio: 10},
		db.Producto{Nombre: "Vino", Precio: 30},
	)

	// when
	found, err := s.store.FindByPrecioBetween(s.ctx, 5, 10)

	// then
	s.Require().NoError(err)
	got := nombres(found)
	sort.Strings(got)
	s.Equal([]string{"Leche", "Pan"}, got)
}

func (s *productoStoreSuite) TestFindByPrecioGreaterAndLessThan_Strict() {
	// given
	s.seed(
		db.Producto{Nombre: "Agua", Precio: 2},
		db.Producto{Nombre: "Leche", Precio: 5},
		db.Producto{Nombre: "Pan", Precio: 10},
	)

	// when
	greater, err := s.store.FindByPrecioGreaterThan(s.ctx, 5)
	s.Require().NoError(err)
	less, err := s.store.FindByPrecioLessThan(s.ctx, 5)
	s.Require().NoError(err)

	// then
	s.Equal([]string{"Pan"}, nombres(greater))
	s.Equal([]string{"Agua"}, nombres(less))
}

func (s *productoStoreSuite) TestFindByNombreAndPrecioRange_CaseSensitive() {
	// given
	s.seed(
		db.Producto{Nombre: "Pan", Precio: 10},
		db.Producto{Nombre: "pan dulce", Precio: 8},
		db.Producto{Nombre: "Pan de lujo", Precio: 200},
	)

	// when
	found, err := s.store.FindByNombreAndPrecioRange(s.ctx, "Pan", 0, 100)

	// then
	s.Require().NoError(err)
	s.Equal([]string{"Pan"}, nombres(found))
}

func (s *productoStoreSuite) TestFindAllOrdered() {
	// given
	s.seed(
		db.Producto{Nombre: "Pan", Precio: 10},
		db.Producto{Nombre: "Leche", Precio: 5},
		db.Producto{Nombre: "Agua", Precio: 2},
	)

	// when
	byPrecio, err := s.store.FindAllOrderByPrecioAsc(s.ctx)
	s.Require().NoError(err)
	byNombre, err := s.store.FindAllOrderByNombreAsc(s.ctx)
	s.Require().NoError(err)

	// then
	s.Equal([]string{"Agua", "Leche", "Pan"}, nombres(byPrecio))
	s.Equal([]string{"Agua", "Leche", "Pan"}, nombres(byNombre))
}

func (s *productoStoreSuite) TestExistsByNombreIgnoreCase() {
	// given
	s.seed(db.Producto{Nombre: "Pan", Precio: 10})

	// then
	exists, err := s.store.ExistsByNombreIgnoreCase(s.ctx, "PAN")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.ExistsByNombreIgnoreCase(s.ctx, "Pa")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *productoStoreSuite) TestNombreIgnoreCase_NonASCII() {
	// given
	s.seed(
		db.Producto{Nombre: "Ñandú", Precio: 10},
		db.Producto{Nombre: "Azúcar Morena", Precio: 3},
	)

	// then
	exists, err := s.store.ExistsByNombreIgnoreCase(s.ctx, "ñANDÚ")
	s.Require().NoError(err)
	s.True(exists)

	found, err := s.store.FindByNombreIgnoreCase(s.ctx, "ñandú")
	s.Require().NoError(err)
	s.Equal([]string{"Ñandú"}, nombres(found))

	found, err = s.store.FindByNombreContainingIgnoreCase(s.ctx, "ÚCAR")
	s.Require().NoError(err)
	s.Equal([]string{"Azúcar Morena"}, nombres(found))
}
