// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/order"
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

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := ReceiptData{
		Order: o,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Email:   s.config.External.Email.FromEmail,
			Website: s.config.App.SiteURL,
		},
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
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"dollars": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100)
		},
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	Order   *order.Order `json:"order"`
	Company CompanyInfo  `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Order.OrderNumber}}</title>
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
        .receipt-info {
            text-align: right;
            flex: 1;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #b45309;
            margin-bottom: 10px;
        }
        .order-details {
            margin-bottom: 30px;
        }
        .order-details table {
            width: 100%;
        }
        .order-details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .order-details .label {
            font-weight: bold;
            width: 150px;
        }
        .fulfillment {
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
        .gift-note {
            background-color: #fef3c7;
            border: 1px solid #f59e0b;
            border-radius: 4px;
            padding: 10px;
            margin-bottom: 20px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>Email: {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="receipt-info">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>
            <p><strong>Placed:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
            <p><strong>For:</strong> {{.Order.OrderDate.Format "Monday, January 2, 2006"}}</p>
        </div>
    </div>

    <div class="order-details">
        <table>
            <tr>
                <td class="label">Order Status:</td>
                <td>{{.Order.Status}}</td>
                <td class="label" style="text-align: right;">Order Type:</td>
                <td style="text-align: right;">{{.Order.OrderType}}</td>
            </tr>
        </table>
    </div>

    {{if .Order.IsGift}}
    <div class="gift-note">
        <strong>Gift order</strong> for {{.Order.RecipientName}}
        {{if .Order.GiftMessage}}<br>&ldquo;{{.Order.GiftMessage}}&rdquo;{{end}}
    </div>
    {{end}}

    <div class="fulfillment">
        {{if eq .Order.OrderType "pickup"}}
        <div class="section-title">Pickup:</div>
        {{if .Order.PickupLocation}}
        <p><strong>{{.Order.PickupLocation.Name}}</strong></p>
        <p>{{.Order.PickupLocation.Address}}, {{.Order.PickupLocation.City}}</p>
        <p>{{.Order.PickupLocation.PickupTime}}</p>
        {{end}}
        {{else}}
        <div class="section-title">Deliver To:</div>
        {{if .Order.Customer}}<p><strong>{{.Order.Customer.FullName}}</strong></p>{{end}}
        <p>{{.Order.DeliveryAddress.String}}</p>
        {{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>
                    <strong>{{.ItemName}}</strong>
                    {{if .Size}}<br><small>{{.Size}}</small>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{dollars .UnitPrice}}</td>
                <td class="total-col">{{dollars .TotalPrice}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">{{dollars .Order.Subtotal}}</td>
            </tr>
            {{if gt .Order.DiscountAmount 0}}
            <tr>
                <td class="label">Discount:</td>
                <td class="amount">-{{dollars .Order.DiscountAmount}}</td>
            </tr>
            {{end}}
            {{if gt .Order.DeliveryFee 0}}
            <tr>
                <td class="label">Delivery:</td>
                <td class="amount">{{dollars .Order.DeliveryFee}}</td>
            </tr>
            {{end}}
            <tr>
                <td class="label">Tax:</td>
                <td class="amount">{{dollars .Order.Tax}}</td>
            </tr>
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{dollars .Order.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for ordering with {{.Company.Name}}!</p>
        <p>Questions about this order? Reach us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
