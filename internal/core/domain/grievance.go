package domain

import (
	"errors"
	"time"
)

var ErrGrievanceNotFound = errors.New("grievance not found")
var ErrDuplicateGrievance = errors.New("grievance already submitted")
var ErrAttachmentNotFound = errors.New("attachment not found")
var ErrAttachmentTooLarge = errors.New("attachment exceeds configured size limit")

// Attachment is a piece of binary evidence stored inline with its grievance.
// Content is the base64 encoding of the original upload bytes.
type Attachment struct {
	Filename string `json:"filename" bson:"filename"`
	MimeType string `json:"mimetype" bson:"mimetype"`
	Content  string `json:"content" bson:"content"`
}

// Grievance is a filed dispute between a vendor and a supplier. Records are
// immutable after creation; there is no update or delete path.
type Grievance struct {
	ID             string       `json:"id"`
	SupplierName   string       `json:"supplier_name"`
	ShopName       string       `json:"shop_name"`
	VendorName     string       `json:"vendor_name"`
	VendorLocation string       `json:"vendor_location"`
	IssueDate      time.Time    `json:"issue_date"`
	IssueType      string       `json:"issue_type"`
	Details        string       `json:"details"`
	PostedBy       Role         `json:"posted_by"`
	Attachments    []Attachment `json:"attachments"`
	CreatedAt      time.Time    `json:"created_at"`
}
