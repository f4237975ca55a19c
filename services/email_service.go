package services

import (
	"fmt"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email sending disabled, skipping", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderConfirmationEmail sends the checkout confirmation with the order
// number and line items
func (es *EmailService) SendOrderConfirmationEmail(email, name, orderNumber string, items []*tables.OrderItem, deliveryAddress string, total uint64) error {
	totalFormatted := fmt.Sprintf("€%.2f", float64(total)/100)

	var itemsBuilder strings.Builder
	for _, item := range items {
		lineTotal := fmt.Sprintf("€%.2f", float64(item.LineTotal)/100)
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s - %s</li>", item.Quantity, item.ProductName, lineTotal)
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a6b8a; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Thank you for your order!</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>Your order has been received. Below you will find the details of your order.</p>

					<div class="order-details">
						<h3>Order Number: <strong>%s</strong></h3>
						<h4>Order Items:</h4>
						<ul>%s</ul>
						<p><strong>Total: %s</strong></p>

						<h4>Delivery Address:</h4>
						<p>%s</p>
					</div>

					<p>You can track your order at any time using your order number.</p>
				</div>

				<div class="footer">
					<p>FreshCatch | Fresh Seafood Delivered Daily</p>
				</div>
			</div>
		</body>
		</html>
	`, name, orderNumber, itemsBuilder.String(), totalFormatted, deliveryAddress)

	subject := fmt.Sprintf("Order confirmation %s", orderNumber)

	return es.SendEmail([]string{email}, subject, emailBody)
}

// SendOrderStatusEmail notifies the customer of a status change
func (es *EmailService) SendOrderStatusEmail(email, name, orderNumber string, status tables.OrderStatus) error {
	statusLines := map[tables.OrderStatus]string{
		tables.OrderStatusConfirmed:      "Your order has been confirmed and will be prepared shortly.",
		tables.OrderStatusPreparing:      "Your order is being prepared.",
		tables.OrderStatusOutForDelivery: "Your order is out for delivery!",
		tables.OrderStatusDelivered:      "Your order has been delivered. Enjoy!",
		tables.OrderStatusCancelled:      "Your order has been cancelled.",
	}

	line, ok := statusLines[status]
	if !ok {
		return nil
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1a6b8a; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Order update</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>There is an update for order <strong>%s</strong>:</p>
					<p>%s</p>
				</div>

				<div class="footer">
					<p>FreshCatch | Fresh Seafood Delivered Daily</p>
				</div>
			</div>
		</body>
		</html>
	`, name, orderNumber, line)

	subject := fmt.Sprintf("Update for order %s", orderNumber)

	return es.SendEmail([]string{email}, subject, emailBody)
}
