// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/billing"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice renders an invoice as a PDF document
func (s *Service) GenerateInvoice(invoice *billing.Invoice) (*bytes.Buffer, error) {
	data := InvoiceData{
		Invoice:     invoice,
		InvoiceDate: invoice.Date.Format("January 2, 2006"),
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
			Website: s.config.Company.Website,
		},
	}
	if invoice.DueDate != nil {
		data.DueDate = invoice.DueDate.Format("January 2, 2006")
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(cents int64) string {
			return fmt.Sprintf("%.2f", float64(cents)/100)
		},
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	Invoice     *billing.Invoice `json:"invoice"`
	InvoiceDate string           `json:"invoice_date"`
	DueDate     string           `json:"due_date"`
	Company     CompanyInfo      `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.Invoice.InvoiceNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .company-info {
            flex: 1;
        }
        .invoice-info {
            text-align: right;
            flex: 1;
        }
        .invoice-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .billing-info {
            margin-bottom: 30px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
        }
        .status-paid {
            background-color: #dcfce7;
            color: #166534;
        }
        .status-pending {
            background-color: #fef3c7;
            color: #92400e;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Phone: {{.Company.Phone}}</p>
            <p>Email: {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.Invoice.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            {{if .DueDate}}<p><strong>Due Date:</strong> {{.DueDate}}</p>{{end}}
            <p>
                <span class="status-badge {{if eq .Invoice.Status "paid"}}status-paid{{else}}status-pending{{end}}">
                    {{.Invoice.Status}}
                </span>
            </p>
        </div>
    </div>

    <div class="billing-info">
        <div class="section-title">Bill To:</div>
        <p><strong>{{.Invoice.Customer.Name}}</strong></p>
        {{if .Invoice.Customer.Address}}<p>{{.Invoice.Customer.Address}}</p>{{end}}
        {{if .Invoice.Customer.City}}<p>{{.Invoice.Customer.City}}{{if .Invoice.Customer.State}}, {{.Invoice.Customer.State}}{{end}} {{.Invoice.Customer.Zip}}</p>{{end}}
        {{if .Invoice.Customer.GSTIN}}<p>GSTIN: {{.Invoice.Customer.GSTIN}}</p>{{end}}
        {{if .Invoice.Customer.Phone}}<p>Phone: {{.Invoice.Customer.Phone}}</p>{{end}}
        {{if .Invoice.Customer.Email}}<p>Email: {{.Invoice.Customer.Email}}</p>{{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Description</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Unit Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Invoice.Items}}
            <tr>
                <td>{{.Description}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">${{money .UnitPrice}}</td>
                <td class="total-col">${{money .Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">${{money .Invoice.TotalAmount}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    {{if .Invoice.Notes}}
    <div class="billing-info">
        <div class="section-title">Notes:</div>
        <p>{{.Invoice.Notes}}</p>
    </div>
    {{end}}

    <div class="footer">
        <p>Thank you for your business!</p>
        <p>If you have any questions about this invoice, please contact us at {{.Company.Email}} or {{.Company.Phone}}</p>
    </div>
</body>
</html>
`
