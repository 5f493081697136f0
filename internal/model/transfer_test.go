package model

import "testing"

func TestTransferStatusTransitions(t *testing.T) {
	tests := []struct {
		from TransferStatus
		to   TransferStatus
		want bool
	}{
		{TransferPendiente, TransferEnviado, true},
		{TransferPendiente, TransferCancelado, true},
		{TransferPendiente, TransferRecibido, false},
		{TransferEnviado, TransferRecibido, true},
		{TransferEnviado, TransferCancelado, true},
		{TransferEnviado, TransferPendiente, false},
		{TransferRecibido, TransferEnviado, false},
		{TransferRecibido, TransferCancelado, false},
		{TransferCancelado, TransferPendiente, false},
		{TransferCancelado, TransferEnviado, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransferStatusIsTerminal(t *testing.T) {
	if TransferPendiente.IsTerminal() || TransferEnviado.IsTerminal() {
		t.Error("Pendiente and Enviado are not terminal")
	}
	if !TransferRecibido.IsTerminal() || !TransferCancelado.IsTerminal() {
		t.Error("Recibido and Cancelado are terminal")
	}
}
