package service

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/railzwaylabs/commissions/internal/commission/calc"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ledger/domain"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header aliases, matched case-insensitively after trimming. For a field
// with several aliases the first non-empty cell wins.
var (
	colCustomer     = []string{"Pessoa"}
	colSeller       = []string{"Vendedor"}
	colCity         = []string{"Origem Venda"}
	colFiscalDoc    = []string{"Doc Fiscal"}
	colModel        = []string{"Modelo"}
	colListPrice    = []string{"Valor Tabela"}
	colSaleOrder    = []string{"Pedido"}
	colProposalOrd  = []string{"Nº Pedido", "N° Pedido", "Pedido"}
	colAmount       = []string{"Valor Total"}
	colPayment      = []string{"Forma Recebimento"}
	colInstallments = []string{"Nº Parcela", "N° Parcela"}
)

type table struct {
	df      dataframe.DataFrame
	columns map[string]string
}

// decode converts the upload to UTF-8. Content that is not valid UTF-8 is
// read as Windows-1252 regardless of the configured encoding.
func decode(data []byte, encoding string) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if encoding == config.EncodingWindows1252 || !utf8.Valid(data) {
		return charmap.Windows1252.NewDecoder().Bytes(data)
	}
	return data, nil
}

// sniffDelimiter follows the header line: a comma anywhere selects comma,
// otherwise semicolon.
func sniffDelimiter(data []byte) rune {
	line, _, _ := bufio.NewReader(bytes.NewReader(data)).ReadLine()
	if bytes.ContainsRune(line, ',') {
		return ','
	}
	return ';'
}

func hasDataRows(data []byte) bool {
	lines := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		lines++
		if lines > 1 {
			return true
		}
	}
	return false
}

func readTable(data []byte, encoding string) (*table, error) {
	text, err := decode(data, encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFile, err)
	}
	if !hasDataRows(text) {
		return nil, domain.ErrEmptyFile
	}

	df := dataframe.ReadCSV(bytes.NewReader(text),
		dataframe.WithDelimiter(sniffDelimiter(text)),
		dataframe.WithLazyQuotes(true),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFile, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, domain.ErrEmptyFile
	}

	columns := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		key := normalizeHeader(name)
		if _, dup := columns[key]; !dup {
			columns[key] = name
		}
	}
	return &table{df: df, columns: columns}, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func (t *table) require(aliases ...[]string) error {
	for _, names := range aliases {
		if !t.has(names) {
			return fmt.Errorf("%w: %s", domain.ErrMissingColumn, names[0])
		}
	}
	return nil
}

func (t *table) has(aliases []string) bool {
	for _, alias := range aliases {
		if _, ok := t.columns[normalizeHeader(alias)]; ok {
			return true
		}
	}
	return false
}

func (t *table) cell(row int, aliases []string) string {
	for _, alias := range aliases {
		name, ok := t.columns[normalizeHeader(alias)]
		if !ok {
			continue
		}
		if value := strings.TrimSpace(t.df.Col(name).Elem(row).String()); value != "" {
			return value
		}
	}
	return ""
}

func parseSales(data []byte, encoding string) ([]domain.SaleRecord, error) {
	t, err := readTable(data, encoding)
	if err != nil {
		return nil, err
	}
	if err := t.require(colCustomer, colSeller, colSaleOrder); err != nil {
		return nil, err
	}

	records := make([]domain.SaleRecord, 0, t.df.Nrow())
	for i := 0; i < t.df.Nrow(); i++ {
		records = append(records, domain.SaleRecord{
			CustomerID:       t.cell(i, colCustomer),
			SellerName:       t.cell(i, colSeller),
			OriginCity:       t.cell(i, colCity),
			OrderID:          t.cell(i, colSaleOrder),
			FiscalDocumentID: t.cell(i, colFiscalDoc),
			VehicleModel:     t.cell(i, colModel),
			ListPrice:        calc.NormalizeValue(t.cell(i, colListPrice)),
		})
	}
	return records, nil
}

func parseProposals(data []byte, encoding string) ([]domain.ProposalRecord, error) {
	t, err := readTable(data, encoding)
	if err != nil {
		return nil, err
	}
	if err := t.require(colCustomer, colProposalOrd, colAmount); err != nil {
		return nil, err
	}

	records := make([]domain.ProposalRecord, 0, t.df.Nrow())
	for i := 0; i < t.df.Nrow(); i++ {
		records = append(records, domain.ProposalRecord{
			CustomerID:        t.cell(i, colCustomer),
			OrderID:           t.cell(i, colProposalOrd),
			FiscalDocumentID:  t.cell(i, colFiscalDoc),
			VehicleModel:      t.cell(i, colModel),
			TransactionAmount: calc.NormalizeValue(t.cell(i, colAmount)),
			PaymentMethodName: t.cell(i, colPayment),
			InstallmentCount:  parseInstallments(t.cell(i, colInstallments)),
		})
	}
	return records, nil
}

// parseInstallments defaults to a single installment for empty or
// unusable values.
func parseInstallments(raw string) int {
	n := calc.NormalizeValue(raw)
	if n < 1 || n > math.MaxInt32 {
		return 1
	}
	return int(n)
}
