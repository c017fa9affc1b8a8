package models

import "testing"

// Every transaction type is exactly one of inflow or outflow; the balance
// direction partition has no gaps and no overlaps.
func TestTransactionType_DirectionPartition(t *testing.T) {
	all := []TransactionType{
		TransactionTypeDeposit,
		TransactionTypeWithdrawal,
		TransactionTypeTransferIn,
		TransactionTypeTransferOut,
		TransactionTypeFee,
	}
	for _, typ := range all {
		if typ.IsInflow() == typ.IsOutflow() {
			t.Errorf("%s: IsInflow=%v IsOutflow=%v, want exactly one", typ, typ.IsInflow(), typ.IsOutflow())
		}
	}

	inflows := map[TransactionType]bool{TransactionTypeDeposit: true, TransactionTypeTransferIn: true}
	for _, typ := range all {
		if typ.IsInflow() != inflows[typ] {
			t.Errorf("%s: IsInflow = %v", typ, typ.IsInflow())
		}
	}
}

func TestEnumUnmarshalText(t *testing.T) {
	var at AccountType
	if err := at.UnmarshalText([]byte("reserve")); err != nil || at != AccountTypeReserve {
		t.Errorf("UnmarshalText(reserve) = %v, %v", at, err)
	}
	if err := at.UnmarshalText([]byte("checking")); err == nil {
		t.Error("invalid account type accepted")
	}

	var tt TransactionType
	if err := tt.UnmarshalText([]byte("transfer_out")); err != nil || tt != TransactionTypeTransferOut {
		t.Errorf("UnmarshalText(transfer_out) = %v, %v", tt, err)
	}
	if err := tt.UnmarshalText([]byte("payment")); err == nil {
		t.Error("invalid transaction type accepted")
	}
}
