package service

import (
	"context"
	"encoding/json"
	"testing"

	"chequeprinter/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutService_SeedDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	svc := NewLayoutService(st, zerolog.Nop())

	seeded, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.ElementsMatch(t, []string{"sbi", "hdfc", "icici"}, ids)
}

func TestLayoutService_SeedSkipsWhenUserLayoutsExist(t *testing.T) {
	ctx := context.Background()
	svc := NewLayoutService(setupTestStore(t), zerolog.Nop())

	_, err := svc.Create(ctx, LayoutInput{Name: "Axis Bank"})
	require.NoError(t, err)

	seeded, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLayoutService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewLayoutService(setupTestStore(t), zerolog.Nop())

	in := NewLayoutInput()
	in.Name = " Axis Bank "
	in.PayeeX, in.PayeeY = 50, 60
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Axis Bank", created.Name)
	assert.Equal(t, models.DefaultAcPayeeX, created.AcPayeeX)

	in.Name = "Axis"
	in.AcPayeeX, in.AcPayeeY = 0, 0
	in.BackgroundImage = "data:image/png;base64,AAAA"
	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Axis", updated.Name)
	assert.Equal(t, 0, updated.AcPayeeX)
	assert.Equal(t, 50, updated.PayeeX)
	assert.Equal(t, in.BackgroundImage, updated.BackgroundImage)

	_, err = svc.Update(ctx, "missing", in)
	assert.ErrorIs(t, err, ErrLayoutNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLayoutNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrLayoutNotFound)
}

func TestLayoutService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewLayoutService(setupTestStore(t), zerolog.Nop())

	_, err := svc.Create(ctx, LayoutInput{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	in := NewLayoutInput()
	in.Name = "Neg"
	in.DateX = -1
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLayoutService_ExportImport(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := NewLayoutService(st, zerolog.Nop())

	file, err := svc.Export(ctx, "hdfc")
	require.NoError(t, err)
	data, err := json.Marshal(file)
	require.NoError(t, err)

	imported, err := svc.Import(ctx, data)
	require.NoError(t, err)
	assert.NotEqual(t, "hdfc", imported.ID)
	assert.Equal(t, "HDFC Bank", imported.Name)

	hdfc, err := svc.Get(ctx, "hdfc")
	require.NoError(t, err)
	assert.Equal(t, hdfc.Coordinates, imported.Coordinates)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	_, err = svc.Export(ctx, "missing")
	assert.ErrorIs(t, err, ErrLayoutNotFound)
}

func TestLayoutService_ImportDefaultsCaption(t *testing.T) {
	svc := NewLayoutService(setupTestStore(t), zerolog.Nop())

	body := `{"name":"Axis","coordinates":{"payeeX":1,"payeeY":2,"amountX":3,"amountY":4,"amountWordsX":5,"amountWordsY":6,"dateX":7,"dateY":8}}`
	l, err := svc.Import(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{PayeeX: 1, PayeeY: 2, AmountX: 3, AmountY: 4, AmountWordsX: 5, AmountWordsY: 6, DateX: 7, DateY: 8, AcPayeeX: 110, AcPayeeY: 80}, l.Coordinates)
}

func TestLayoutService_ImportErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewLayoutService(setupTestStore(t), zerolog.Nop())

	_, err := svc.Import(ctx, []byte("{not json"))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = svc.Import(ctx, []byte(`{"name":"","coordinates":{}}`))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "HDFC_Bank_layout.json", ExportFilename("HDFC Bank"))
}
