package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwasifin/vested/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>KES
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>12500.00
<FITID>2024011501
<NAME>WHOLESALE CUSTOMER PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-3400.00
<FITID>2024012001
<NAME>Supplier restock
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-500.00
<FITID>2024012501
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>8600.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile_BankStatement(t *testing.T) {
	parser := NewParser("KES")

	txns, err := parser.ParseFile(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	deposit := txns[0]
	assert.Equal(t, "2024011501", deposit.ID)
	assert.Equal(t, model.TypeIncome, deposit.Type)
	assert.Equal(t, 12500.0, deposit.Amount)
	assert.Equal(t, "KES", deposit.Currency)
	assert.Equal(t, "WHOLESALE CUSTOMER PAYMENT", deposit.Description)
	assert.Equal(t, "bank_transfer", deposit.PaymentMethod)
	require.NotNil(t, deposit.Status)
	assert.Equal(t, model.StatusSettled, *deposit.Status)
	assert.Equal(t, 2024, deposit.Date.Year())

	// Debits come back as expenses with a positive amount.
	debit := txns[1]
	assert.Equal(t, model.TypeExpense, debit.Type)
	assert.Equal(t, 3400.0, debit.Amount)
	assert.Equal(t, "card", debit.PaymentMethod)

	cheque := txns[2]
	assert.Equal(t, model.TypeExpense, cheque.Type)
	assert.Equal(t, "cheque", cheque.PaymentMethod)

	for i := range txns {
		assert.NoError(t, txns[i].Validate())
	}
}

func TestParseFile_ToleratesSGMLQuirks(t *testing.T) {
	// Leading whitespace and lowercase severity values show up in real
	// exports and should not break parsing.
	quirky := "\n  \t" + strings.ReplaceAll(sampleBankOFX, "<SEVERITY>INFO", "<SEVERITY>Info")

	parser := NewParser("KES")
	txns, err := parser.ParseFile(strings.NewReader(quirky))
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestParseFile_InvalidInput(t *testing.T) {
	parser := NewParser("KES")

	_, err := parser.ParseFile(strings.NewReader("this is not an OFX file"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse OFX file")
}

func TestPaymentMethod(t *testing.T) {
	tests := []struct {
		trnType string
		want    string
	}{
		{"ATM", "cash"},
		{"CASH", "cash"},
		{"CHECK", "cheque"},
		{"XFER", "bank_transfer"},
		{"DIRECTDEP", "bank_transfer"},
		{"POS", "card"},
		{"DEBIT", "card"},
		{"credit", "card"},
		{"OTHER", "bank_transfer"},
		{"", "bank_transfer"},
	}

	for _, tt := range tests {
		t.Run(tt.trnType, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentMethod(tt.trnType))
		})
	}
}

func TestPreprocess_FixesUnclosedTags(t *testing.T) {
	parser := NewParser("KES")

	fixed := parser.preprocess("<OFX\n<CURDEF\n</OFX>")
	assert.Contains(t, fixed, "<OFX>")
	assert.Contains(t, fixed, "<CURDEF>")
}
