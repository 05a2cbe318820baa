package payment

import (
	"strings"
	"testing"
)

const sigTestKey = "SB-Mid-server-abc123"

func TestVerifySignature_Valid(t *testing.T) {
	sig := Signature("SS-1", "200", "249000.00", sigTestKey)

	if !VerifySignature("SS-1", "200", "249000.00", sigTestKey, sig) {
		t.Fatal("expected valid signature to verify")
	}
	// Hex case and surrounding whitespace don't matter.
	if !VerifySignature("SS-1", "200", "249000.00", sigTestKey, " "+strings.ToUpper(sig)+" ") {
		t.Fatal("expected uppercase signature to verify")
	}
}

func TestVerifySignature_SingleFieldMutations(t *testing.T) {
	sig := Signature("SS-1", "200", "249000.00", sigTestKey)

	tests := []struct {
		name        string
		orderID     string
		statusCode  string
		grossAmount string
		signature   string
	}{
		{name: "mutated signature", orderID: "SS-1", statusCode: "200", grossAmount: "249000.00", signature: flipFirstByte(sig)},
		{name: "mutated order id", orderID: "SS-2", statusCode: "200", grossAmount: "249000.00", signature: sig},
		{name: "mutated status code", orderID: "SS-1", statusCode: "201", grossAmount: "249000.00", signature: sig},
		{name: "mutated gross amount", orderID: "SS-1", statusCode: "200", grossAmount: "249000.01", signature: sig},
		{name: "truncated signature", orderID: "SS-1", statusCode: "200", grossAmount: "249000.00", signature: sig[:len(sig)-1]},
		{name: "empty signature", orderID: "SS-1", statusCode: "200", grossAmount: "249000.00", signature: ""},
	}

	for _, tt := range tests {
		if VerifySignature(tt.orderID, tt.statusCode, tt.grossAmount, sigTestKey, tt.signature) {
			t.Fatalf("%s: expected verification to fail", tt.name)
		}
	}
}

func TestVerifySignature_MissingServerKey(t *testing.T) {
	sig := Signature("SS-1", "200", "249000.00", "")
	if VerifySignature("SS-1", "200", "249000.00", "", sig) {
		t.Fatal("an empty server key must never verify")
	}
}

func flipFirstByte(hexSig string) string {
	first := "0"
	if hexSig[0] == '0' {
		first = "1"
	}
	return first + hexSig[1:]
}
