// Package ofx converts OFX/QFX bank statements into engine transactions.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/kwasifin/vested/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct {
	baseCurrency string
}

// NewParser creates a parser. Statements without a currency declaration fall
// back to the given base currency.
func NewParser(baseCurrency string) *Parser {
	return &Parser{baseCurrency: baseCurrency}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in real-world OFX files:
// leading whitespace, mixed-case SEVERITY values, and SGML-style tags
// missing their closing bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file and returns engine transactions.
// Credits become income, debits become expenses; amounts are always
// non-negative with the sign carried by the type.
func (p *Parser) ParseFile(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		currency := p.statementCurrency(stmt.CurDef.String())
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, currency))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		currency := p.statementCurrency(stmt.CurDef.String())
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, p.convert(ofxTx, currency))
		}
	}

	slog.Info("Parsed OFX file", "transactions", len(transactions))

	return transactions, nil
}

func (p *Parser) statementCurrency(curDef string) string {
	if curDef == "" {
		return p.baseCurrency
	}
	return curDef
}

// convert maps one OFX transaction to the engine model. OFX carries the sign
// on the amount; the engine carries it on the type.
func (p *Parser) convert(ofxTx ofxgo.Transaction, currency string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()
	txnType := model.TypeIncome
	if amount < 0 {
		txnType = model.TypeExpense
		amount = -amount
	}

	id := string(ofxTx.FiTID)
	if id == "" {
		id = uuid.NewString()
	}

	status := model.StatusSettled

	return model.Transaction{
		ID:            id,
		Date:          ofxTx.DtPosted.Time,
		Type:          txnType,
		Amount:        amount,
		Currency:      currency,
		Description:   description(ofxTx),
		PaymentMethod: paymentMethod(ofxTx.TrnType.String()),
		Status:        &status,
	}
}

func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && name == "" {
		return memo
	}
	return name
}

// paymentMethod maps OFX TRNTYPE onto the engine's payment vocabulary.
func paymentMethod(trnType string) string {
	switch strings.ToUpper(trnType) {
	case "ATM", "CASH":
		return "cash"
	case "CHECK":
		return "cheque"
	case "XFER", "DIRECTDEP", "DIRECTDEBIT", "PAYMENT", "REPEATPMT":
		return "bank_transfer"
	case "POS", "DEBIT", "CREDIT":
		return "card"
	default:
		return "bank_transfer"
	}
}
