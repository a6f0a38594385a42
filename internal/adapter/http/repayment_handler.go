package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sacco-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

func (h *RepaymentHandler) Disburse(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"), actorRole(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type repayReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *RepaymentHandler) PostRepayment(c echo.Context) error {
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.PostRepayment(c.Request().Context(), c.Param("loan_id"), req.Amount)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) MarkDefaulted(c echo.Context) error {
	if err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"), actorRole(c)); err != nil {
		return errJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
