package blocktemplatebuilder

import (
	"testing"

	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/merkle"
	"github.com/kaspanet/powledger/domain/consensus/utils/testutils"
	"github.com/kaspanet/powledger/domain/miningmanager/mempool"
	"github.com/kaspanet/powledger/domain/miningmanager/model"
)

func newTestBuilder(t *testing.T, params *chaincfg.Params) (model.BlockTemplateBuilder, model.Mempool) {
	mp := mempool.New(mempool.DefaultConfig(params))
	return New(params, mp), mp
}

func admit(t *testing.T, mp model.Mempool, tx *externalapi.DomainTransaction) {
	_, err := mp.ValidateAndInsertTransaction(tx)
	if err != nil {
		t.Fatalf("ValidateAndInsertTransaction: %+v", err)
	}
}

func TestBuildBlockTemplate(t *testing.T) {
	params := chaincfg.MainnetParams
	builder, mp := newTestBuilder(t, &params)

	empty := builder.BuildBlockTemplate(params.GenesisMarker)
	if empty.TransactionCount() != 0 || empty.Header.MerkleRoot() != nil {
		t.Fatalf("a template over an empty mempool should carry nothing")
	}
	if !empty.Header.PreviousHash().Equal(params.GenesisMarker) {
		t.Fatalf("unexpected previous hash %s", empty.Header.PreviousHash())
	}

	transactions := make([]*externalapi.DomainTransaction, params.BlockCapacity+2)
	for i := range transactions {
		transactions[i] = testutils.SignedTransaction(t, i)
		admit(t, mp, transactions[i])
	}

	template := builder.BuildBlockTemplate(params.GenesisMarker)
	if template.TransactionCount() != params.BlockCapacity {
		t.Fatalf("expected %d transactions, got %d", params.BlockCapacity, template.TransactionCount())
	}
	for i, tx := range template.Transactions {
		if tx != transactions[i] {
			t.Fatalf("position %d: transactions should be taken first come first served", i)
		}
	}
	if !template.Header.MerkleRoot().Equal(merkle.CalculateHashMerkleRoot(template.Transactions)) {
		t.Fatalf("the template merkle root does not match its transactions")
	}
	if template.Header.Version() != params.HeaderVersion {
		t.Fatalf("unexpected version %d", template.Header.Version())
	}
}

func TestBuildBlockTemplateSkipsUnauthorizedSpends(t *testing.T) {
	params := chaincfg.MainnetParams
	builder, mp := newTestBuilder(t, &params)

	unauthorized := testutils.SignedTransaction(t, 0)
	unauthorized.Inputs[0].UnlockingScript = externalapi.Script{{1}, {2}}
	unauthorized.ID = nil
	valid := testutils.SignedTransaction(t, 1)
	admit(t, mp, unauthorized)
	admit(t, mp, valid)

	template := builder.BuildBlockTemplate(params.GenesisMarker)
	if template.TransactionCount() != 1 || !blockhelper.Contains(template, valid) {
		t.Fatalf("only the authorized transaction should be in the template")
	}
	if mp.TransactionCount() != 2 {
		t.Fatalf("skipped transactions should stay in the mempool")
	}
}

func TestFillBlockTemplate(t *testing.T) {
	params := chaincfg.SimnetParams
	builder, mp := newTestBuilder(t, &params)

	first := testutils.SignedTransaction(t, 0)
	admit(t, mp, first)
	template := builder.BuildBlockTemplate(params.GenesisMarker)
	rootBefore := template.Header.MerkleRoot()

	// Nothing new to add
	if added := builder.FillBlockTemplate(template); added != 0 {
		t.Fatalf("expected no added transactions, got %d", added)
	}

	for i := 1; i <= params.BlockCapacity; i++ {
		admit(t, mp, testutils.SignedTransaction(t, i))
	}
	added := builder.FillBlockTemplate(template)
	if added != params.BlockCapacity-1 {
		t.Fatalf("expected %d added transactions, got %d", params.BlockCapacity-1, added)
	}
	if template.Transactions[0] != first {
		t.Fatalf("filling must not reorder the template")
	}
	if template.Header.MerkleRoot().Equal(rootBefore) {
		t.Fatalf("filling should update the merkle root")
	}
}
