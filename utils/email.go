package utils

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// InvoiceEmailData dữ liệu cho template email hóa đơn
type InvoiceEmailData struct {
	InvoiceNumber string
	CustomerName  string
	MovieTitle    string
	Showtime      string
	Seats         string
	Subtotal      float64
	TaxAmount     float64
	TotalAmount   float64
	PaymentMethod string
}

// TicketEmailData dữ liệu cho template email vé, QR nhúng qua cid
type TicketEmailData struct {
	TicketNumber string
	CustomerName string
	MovieTitle   string
	RoomName     string
	Showtime     string
	Seats        string
}

// CancellationEmailData dữ liệu cho template email hủy vé
type CancellationEmailData struct {
	TicketNumber string
	CustomerName string
	MovieTitle   string
	Showtime     string
	Seats        string
	TotalAmount  float64
}

func smtpDialer() *gomail.Dialer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

func renderTemplate(path string, data any) (string, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// SendInvoiceEmail gửi hóa đơn sau khi thanh toán. Trả error để handler báo cờ emailSent.
func SendInvoiceEmail(to string, data InvoiceEmailData) error {
	body, err := renderTemplate("templates/invoice_email.html", data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Hóa đơn "+data.InvoiceNumber)
	m.SetBody("text/html", body)

	return smtpDialer().DialAndSend(m)
}

// SendTicketEmail gửi vé điện tử kèm QR code nhúng inline
func SendTicketEmail(to string, data TicketEmailData, qrBytes []byte) error {
	body, err := renderTemplate("templates/ticket_email.html", data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Vé xem phim "+data.TicketNumber)
	m.SetBody("text/html", body)
	if len(qrBytes) > 0 {
		m.Embed("qr_ticket.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}), gomail.SetHeader(map[string][]string{
			"Content-Type":        {"image/png"},
			"Content-ID":          {"<qr_ticket_code>"},
			"Content-Disposition": {"inline"},
		}))
	}

	return smtpDialer().DialAndSend(m)
}

// SendCancellationEmail gửi xác nhận hủy vé
func SendCancellationEmail(to string, data CancellationEmailData) error {
	body, err := renderTemplate("templates/booking_cancelled.html", data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Xác nhận hủy vé "+data.TicketNumber)
	m.SetBody("text/html", body)

	return smtpDialer().DialAndSend(m)
}
