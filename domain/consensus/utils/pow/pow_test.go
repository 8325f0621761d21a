package pow

import (
	"math/big"
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func TestTargetFromDifficulty(t *testing.T) {
	tests := []struct {
		difficulty uint32
		exponent   uint
	}{
		{0, 255},
		{1, 255},
		{8, 248},
		{255, 1},
		{256, 0},
		{1000, 0},
	}

	for _, test := range tests {
		expected := new(big.Int).Lsh(big.NewInt(1), test.exponent)
		target := TargetFromDifficulty(test.difficulty)
		if target.Cmp(expected) != 0 {
			t.Errorf("TargetFromDifficulty(%d): expected 2^%d, got %s", test.difficulty, test.exponent, target)
		}
	}
}

func TestCheckProofOfWork(t *testing.T) {
	header := externalapi.NewCompleteDomainBlockHeader(1, &externalapi.DomainHash{}, &externalapi.DomainHash{}, 1000, 4, 0)

	// With difficulty 4 about one nonce out of 16 is valid
	var valid, invalid bool
	for nonce := uint64(0); nonce < 1000 && !(valid && invalid); nonce++ {
		header.SetNonce(nonce)
		ok := CheckProofOfWork(header)
		if ok != (CalcPowValue(header).Cmp(TargetFromDifficulty(4)) <= 0) {
			t.Fatalf("CheckProofOfWork disagrees with the target comparison at nonce %d", nonce)
		}
		if ok {
			valid = true
		} else {
			invalid = true
		}
	}
	if !valid || !invalid {
		t.Fatalf("expected to find both valid and invalid nonces, valid: %t, invalid: %t", valid, invalid)
	}
}
