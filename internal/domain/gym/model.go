package gym

import (
	"strings"
	"time"
)

// Gym is a tenant on the platform. Created by a super admin together
// with its paired admin account; never hard-deleted, only deactivated.
type Gym struct {
	ID      string `firestore:"id" json:"id"`
	Name    string `firestore:"name" json:"name"`
	Slug    string `firestore:"slug,omitempty" json:"slug,omitempty"`
	Address string `firestore:"address,omitempty" json:"address,omitempty"`
	Phone   string `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email   string `firestore:"email,omitempty" json:"email,omitempty"`
	UPIID   string `firestore:"upiId,omitempty" json:"upiId,omitempty"`

	MonthlyFee    float64 `firestore:"monthlyFee" json:"monthlyFee"`
	QuarterlyFee  float64 `firestore:"quarterlyFee,omitempty" json:"quarterlyFee,omitempty"`
	SemiAnnualFee float64 `firestore:"semiAnnualFee,omitempty" json:"semiAnnualFee,omitempty"`

	Description  string   `firestore:"description,omitempty" json:"description,omitempty"`
	Amenities    []string `firestore:"amenities,omitempty" json:"amenities,omitempty"`
	Images       []string `firestore:"images,omitempty" json:"images,omitempty"`
	OpeningHours string   `firestore:"openingHours,omitempty" json:"openingHours,omitempty"`
	Capacity     int      `firestore:"capacity,omitempty" json:"capacity,omitempty"`

	AdminID   string `firestore:"adminId" json:"adminId"`
	CreatedBy string `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
	IsActive  bool   `firestore:"isActive" json:"isActive"`

	SearchTokens []string `firestore:"searchTokens,omitempty" json:"-"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProvisionInput creates a gym together with its admin account.
type ProvisionInput struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	UPIID         string   `json:"upiId"`
	MonthlyFee    float64  `json:"monthlyFee"`
	QuarterlyFee  float64  `json:"quarterlyFee,omitempty"`
	SemiAnnualFee float64  `json:"semiAnnualFee,omitempty"`
	Description   string   `json:"description,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Capacity      int      `json:"capacity,omitempty"`

	AdminName     string `json:"adminName"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
}

func (in *ProvisionInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.UPIID = strings.TrimSpace(in.UPIID)
	in.Description = strings.TrimSpace(in.Description)
	in.AdminName = strings.TrimSpace(in.AdminName)
	in.AdminEmail = strings.TrimSpace(in.AdminEmail)
}

// UpdateSettingsInput is the gym admin's own-gym settings form.
// Nil pointers leave the field untouched.
type UpdateSettingsInput struct {
	Name          *string   `json:"name,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	UPIID         *string   `json:"upiId,omitempty"`
	MonthlyFee    *float64  `json:"monthlyFee,omitempty"`
	QuarterlyFee  *float64  `json:"quarterlyFee,omitempty"`
	SemiAnnualFee *float64  `json:"semiAnnualFee,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	OpeningHours  *string   `json:"openingHours,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
}

// ProvisionResult reports the created gym and admin identity.
type ProvisionResult struct {
	Gym        *Gym   `json:"gym"`
	AdminUID   string `json:"adminUid"`
	AdminEmail string `json:"adminEmail"`
}
