package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/agendaly/salon-platform/internal/httperr"
)

// writeBusinessError maps core business errors onto the HTTP surface.
// Slot conflicts get their own status and an actionable message, since
// picking another time is the expected recovery.
func writeBusinessError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, fallbackCode, fallbackMsg)
		return
	}

	switch be.Code {
	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, be.Code, "Horário indisponível para este profissional. Escolha outro horário.")
	case httperr.CodeInvalidState:
		httperr.BadRequest(c, be.Code, "Transição de status inválida.")
	case httperr.CodeNoActiveAgreement:
		httperr.BadRequest(c, be.Code, "Profissional sem acordo de comissão ativo.")
	case httperr.CodeOutOfCoverage:
		httperr.BadRequest(c, be.Code, "Endereço fora da área de cobertura.")
	case httperr.CodeInsufficientBalance:
		httperr.BadRequest(c, be.Code, "Saldo de pontos insuficiente.")
	case httperr.CodeTooSoon:
		httperr.BadRequest(c, be.Code, "Horário muito próximo. Respeite a antecedência mínima.")
	case httperr.CodeOutsideWorkingHours:
		httperr.BadRequest(c, be.Code, "Fora do horário de atendimento.")
	case httperr.CodeValidation, "invalid_date_or_time":
		httperr.BadRequest(c, be.Code, "Dados inválidos.")
	case "appointment_not_found", "service_not_found", "professional_not_found",
		"establishment_not_found", "transaction_not_found":
		httperr.NotFound(c, be.Code, "Registro não encontrado.")
	default:
		httperr.BadRequest(c, be.Code, "Operação não permitida.")
	}
}
