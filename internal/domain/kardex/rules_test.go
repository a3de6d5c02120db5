package kardex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/kardex"
)

// ──────────────────────────────────────────────────────────────────────────────
// SignedQuantity — clasificación entrada/salida y signo almacenado
// ──────────────────────────────────────────────────────────────────────────────

func TestSignedQuantity_EntradasQuedanPositivas(t *testing.T) {
	entradas := []entity.MovementType{
		entity.MovementRestock,
		entity.MovementReturn,
		entity.MovementProduction,
		entity.MovementTransferIn,
	}
	for _, tipo := range entradas {
		got, err := kardex.SignedQuantity(tipo, 500)
		require.NoError(t, err, "tipo %s", tipo)
		assert.Equal(t, int64(500), got, "una entrada %s debe almacenarse positiva", tipo)
	}
}

func TestSignedQuantity_SalidasSeNiegan(t *testing.T) {
	salidas := []entity.MovementType{
		entity.MovementSale,
		entity.MovementLoss,
		entity.MovementTransferOut,
	}
	for _, tipo := range salidas {
		got, err := kardex.SignedQuantity(tipo, 250)
		require.NoError(t, err, "tipo %s", tipo)
		assert.Equal(t, int64(-250), got, "una salida %s debe almacenarse negativa", tipo)
	}
}

func TestSignedQuantity_AdjustmentConservaElSigno(t *testing.T) {
	got, err := kardex.SignedQuantity(entity.MovementAdjustment, -120)
	require.NoError(t, err)
	assert.Equal(t, int64(-120), got, "un ajuste negativo llega firmado y se respeta")

	got, err = kardex.SignedQuantity(entity.MovementAdjustment, 75)
	require.NoError(t, err)
	assert.Equal(t, int64(75), got, "un ajuste positivo llega firmado y se respeta")
}

func TestSignedQuantity_AdjustmentCeroEsInvalido(t *testing.T) {
	_, err := kardex.SignedQuantity(entity.MovementAdjustment, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignedQuantity_CantidadNoPositivaEsInvalida(t *testing.T) {
	for _, tipo := range []entity.MovementType{entity.MovementRestock, entity.MovementSale} {
		_, err := kardex.SignedQuantity(tipo, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cero en %s", tipo)
		_, err = kardex.SignedQuantity(tipo, -10)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "negativo en %s", tipo)
	}
}

func TestSignedQuantity_TipoDesconocidoEsInvalido(t *testing.T) {
	_, err := kardex.SignedQuantity(entity.MovementType("donation"), 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateReason — motivo obligatorio en loss/return, genérico en restock
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateReason_LossYReturnExigenMotivo(t *testing.T) {
	for _, tipo := range []entity.MovementType{entity.MovementLoss, entity.MovementReturn} {
		_, err := kardex.ValidateReason(tipo, "")
		assert.ErrorIs(t, err, domain.ErrReasonRequired, "tipo %s sin motivo", tipo)

		_, err = kardex.ValidateReason(tipo, "   ")
		assert.ErrorIs(t, err, domain.ErrReasonRequired, "tipo %s con motivo en blanco", tipo)

		got, err := kardex.ValidateReason(tipo, "bolsa rota en bodega")
		require.NoError(t, err)
		assert.Equal(t, "bolsa rota en bodega", got)
	}
}

func TestValidateReason_RestockSinMotivoUsaElGenerico(t *testing.T) {
	got, err := kardex.ValidateReason(entity.MovementRestock, "")
	require.NoError(t, err)
	assert.Equal(t, kardex.MotivoRestockDefault, got)

	got, err = kardex.ValidateReason(entity.MovementRestock, "compra finca La Esperanza")
	require.NoError(t, err)
	assert.Equal(t, "compra finca La Esperanza", got, "un motivo explícito no se reemplaza")
}

func TestValidateReason_OtrosTiposAceptanMotivoVacio(t *testing.T) {
	got, err := kardex.ValidateReason(entity.MovementAdjustment, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply — conservación y no-negatividad
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ConservaStock(t *testing.T) {
	before, after, err := kardex.Apply(1000, -300)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), before)
	assert.Equal(t, int64(700), after)
	assert.Equal(t, after, before+(-300), "stock_after = stock_before + cantidad firmada")
}

func TestApply_RechazaStockNegativo(t *testing.T) {
	_, _, err := kardex.Apply(200, -300)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_PermiteQuedarExactamenteEnCero(t *testing.T) {
	_, after, err := kardex.Apply(300, -300)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after)
}
