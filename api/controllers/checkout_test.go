package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/hyun090116/vortex-game-explorer/internal/checkout"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
)

type stubCheckoutService struct {
	initiate *checkoutsvc.InitiateResult
	confirm  *checkoutsvc.ConfirmResult
	err      error

	lastConfirm checkoutsvc.ConfirmRequest
}

func (s *stubCheckoutService) Initiate(context.Context, uuid.UUID) (*checkoutsvc.InitiateResult, error) {
	return s.initiate, s.err
}

func (s *stubCheckoutService) Confirm(_ context.Context, _ uuid.UUID, req checkoutsvc.ConfirmRequest) (*checkoutsvc.ConfirmResult, error) {
	s.lastConfirm = req
	return s.confirm, s.err
}

func TestCheckoutInitiateReportsOutcomeInline(t *testing.T) {
	svc := &stubCheckoutService{initiate: &checkoutsvc.InitiateResult{Outcome: checkoutsvc.OutcomeEmptyCart}}
	handler := CheckoutInitiate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data checkoutsvc.InitiateResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Outcome != checkoutsvc.OutcomeEmptyCart {
		t.Fatalf("expected empty_cart outcome got %q", envelope.Data.Outcome)
	}
}

func TestPaymentConfirmPassesProviderFields(t *testing.T) {
	svc := &stubCheckoutService{confirm: &checkoutsvc.ConfirmResult{
		Outcome: checkoutsvc.OutcomeConfirmed,
		OrderID: "vx_20260830_abc",
		Amount:  45000,
	}}
	handler := PaymentConfirm(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"paymentKey": "tk_test_payment",
		"orderId":    "vx_20260830_abc",
		"amount":     45000,
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/payments/confirm", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastConfirm.PaymentKey != "tk_test_payment" || svc.lastConfirm.Amount != 45000 {
		t.Fatalf("confirm request not forwarded: %+v", svc.lastConfirm)
	}
}

func TestPaymentConfirmRejectsMissingAmount(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := PaymentConfirm(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"paymentKey": "tk_test_payment",
		"orderId":    "vx_20260830_abc",
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/payments/confirm", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPaymentConfirmSurfacesProviderDecline(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodePayment, "카드 한도를 초과했습니다")}
	handler := PaymentConfirm(svc, nil)

	body, _ := json.Marshal(map[string]any{
		"paymentKey": "tk_test_payment",
		"orderId":    "vx_20260830_abc",
		"amount":     45000,
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/payments/confirm", body))

	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 got %d", resp.Code)
	}
}

func TestPaymentFailEchoesProviderReason(t *testing.T) {
	handler := PaymentFail(nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/payments/fail?code=PAY_PROCESS_CANCELED&message=cancelled", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data paymentFailResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Code != "PAY_PROCESS_CANCELED" {
		t.Fatalf("provider code lost: %+v", envelope.Data)
	}
}
