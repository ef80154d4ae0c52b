package services

import (
	"context"
	"errors"
	"testing"

	"pos-kemasan/apperr"
	"pos-kemasan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	svc := NewCategoryService(store)

	tinta, err := svc.Create(ctx, CategoryInput{Name: " Tinta "})
	require.NoError(t, err)
	assert.Equal(t, "Tinta", tinta.Name)
	kertas, err := svc.Create(ctx, CategoryInput{Name: "Kertas"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CategoryInput{Name: "Tinta"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	_, err = svc.Create(ctx, CategoryInput{Name: "   "})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Kertas", list[0].Name)

	renamed, err := svc.Update(ctx, tinta.ID, CategoryInput{Name: "Tinta Offset"})
	require.NoError(t, err)
	assert.Equal(t, "Tinta Offset", renamed.Name)
	_, err = svc.Update(ctx, tinta.ID, CategoryInput{Name: "Kertas"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	_, err = svc.Update(ctx, 999, CategoryInput{Name: "Baru"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = NewMaterialService(store, nil, nil).Create(ctx, MaterialInput{Name: "Art Paper", Unit: "lembar", CategoryID: &kertas.ID}, manajer)
	require.NoError(t, err)
	err = svc.Delete(ctx, kertas.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	require.NoError(t, svc.Delete(ctx, tinta.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, tinta.ID), apperr.ErrNotFound))
}
