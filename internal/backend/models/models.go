// Package models holds the wire shapes exchanged with the banking backend.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/verification"
)

// Envelope wraps every backend response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message"`
}

// Client is a corporate client owned by exactly one bank.
type Client struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	RegistrationNumber string              `json:"registrationNumber"`
	Address            string              `json:"address"`
	VerificationStatus verification.Status `json:"verificationStatus"`
	VerifiedBy         *int64              `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time          `json:"verifiedAt,omitempty"`
	BankID             int64               `json:"bankId"`
	BankName           string              `json:"bankName"`
	TotalEmployees     int                 `json:"totalEmployees"`
	TotalBeneficiaries int                 `json:"totalBeneficiaries"`
	TotalPayments      int                 `json:"totalPayments"`
}

func (c *Client) IsVerified() bool {
	return c.VerificationStatus == verification.StatusVerified
}

// VerifyRequest is the body of PUT /bankuser/clients/{id}/verify.
type VerifyRequest struct {
	VerificationStatus verification.Status `json:"verificationStatus"`
	Notes              string              `json:"notes"`
}

// Document is a verification document uploaded for a client.
type Document struct {
	DocumentID int64     `json:"documentId"`
	UploadedBy int64     `json:"uploadedBy"`
	BankID     int64     `json:"bankId"`
	ClientID   *int64    `json:"clientId,omitempty"`
	DocType    string    `json:"docType,omitempty"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// User is the authenticated principal returned at login.
type User struct {
	UserID     int64  `json:"userId"`
	UserName   string `json:"userName"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BankID     *int64 `json:"bankId"`
	BankName   string `json:"bankName,omitempty"`
	ClientID   *int64 `json:"clientId"`
	ClientName string `json:"clientName,omitempty"`
}

type LoginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type Token struct {
	AccessToken string    `json:"accessToken"`
	Expiry      time.Time `json:"expiry"`
}

type LoginResponse struct {
	User  User  `json:"user"`
	Token Token `json:"token"`
}

// Payment is a client-initiated payment awaiting or past bank approval.
type Payment struct {
	ID                       int64           `json:"id"`
	ClientID                 *int64          `json:"clientId,omitempty"`
	BeneficiaryID            *int64          `json:"beneficiaryId,omitempty"`
	BeneficiaryName          string          `json:"beneficiaryName"`
	BeneficiaryAccountNumber string          `json:"beneficiaryAccountNumber"`
	Amount                   decimal.Decimal `json:"amount"`
	PaymentDate              time.Time       `json:"paymentDate"`
	Status                   string          `json:"status"`
	ApprovedBy               *int64          `json:"approvedBy,omitempty"`
	ApprovedByName           string          `json:"approvedByName"`
	CreatedAt                time.Time       `json:"createdAt"`
	ClientName               string          `json:"clientName"`
}

type PaymentDecisionRequest struct {
	Notes string `json:"notes"`
}
