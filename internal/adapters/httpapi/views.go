package httpapi

import (
	"time"

	"aidconnect/internal/core/domain"
)

// JSON views. The entities carry the password hash and encrypted-at-rest
// markers; these shapes are what actually leaves the API.

type documentsView struct {
	Signature              *string `json:"signature,omitempty"`
	NationalID             *string `json:"nationalId,omitempty"`
	TaxID                  *string `json:"taxId,omitempty"`
	ResidentialCertificate *string `json:"residentialCertificate,omitempty"`
}

type userView struct {
	ID                      string        `json:"id"`
	Name                    string        `json:"name"`
	Email                   string        `json:"email"`
	IsAdmin                 bool          `json:"isAdmin"`
	Photo                   *string       `json:"photo,omitempty"`
	LastAppliedScheme       *string       `json:"lastAppliedScheme,omitempty"`
	FatherName              *string       `json:"fatherName,omitempty"`
	MotherName              *string       `json:"motherName,omitempty"`
	Mobile                  *string       `json:"mobile,omitempty"`
	NationalID              *string       `json:"nationalId,omitempty"`
	TaxID                   *string       `json:"taxId,omitempty"`
	Income                  *int64        `json:"income,omitempty"`
	RoutingCode             *string       `json:"routingCode,omitempty"`
	BankName                *string       `json:"bank,omitempty"`
	IsEmailVerified         bool          `json:"isEmailVerified"`
	IsPersonalInfoCompleted bool          `json:"isPersonalInfoCompleted"`
	Documents               documentsView `json:"documents"`
	CreatedAt               time.Time     `json:"createdAt"`
}

type applicationView struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	SchemeID          string        `json:"schemeId"`
	SchemeTitle       string        `json:"schemeTitle"`
	Status            string        `json:"status"`
	PhotoFilename     *string       `json:"photoFilename,omitempty"`
	PhotoUploaded     bool          `json:"photoUploaded"`
	Documents         documentsView `json:"documents"`
	DocumentsUploaded bool          `json:"documentsUploaded"`
	Remarks           *string       `json:"remarks,omitempty"`
	ApplicationDate   time.Time     `json:"applicationDate"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	OwnerName         string        `json:"ownerName,omitempty"`
	OwnerEmail        string        `json:"ownerEmail,omitempty"`
}

type schemeView struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"desc"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	FeeDate          string `json:"feeDate"`
	CorrectionWindow string `json:"correctionWindow"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
	LastUpdated      string `json:"lastUpdated"`
	Status           string `json:"status"`
}

func toDocumentsView(d domain.DocumentSet) documentsView {
	return documentsView{
		Signature:              d.Signature,
		NationalID:             d.NationalID,
		TaxID:                  d.TaxID,
		ResidentialCertificate: d.ResidentialCertificate,
	}
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:                      u.ID.String(),
		Name:                    u.Name,
		Email:                   u.Email,
		IsAdmin:                 u.IsAdmin,
		Photo:                   u.Photo,
		LastAppliedScheme:       u.LastAppliedScheme,
		FatherName:              u.FatherName,
		MotherName:              u.MotherName,
		Mobile:                  u.Mobile,
		NationalID:              u.NationalID,
		TaxID:                   u.TaxID,
		Income:                  u.Income,
		RoutingCode:             u.RoutingCode,
		BankName:                u.BankName,
		IsEmailVerified:         u.IsEmailVerified,
		IsPersonalInfoCompleted: u.IsPersonalInfoCompleted,
		Documents:               toDocumentsView(u.Documents),
		CreatedAt:               u.CreatedAt,
	}
}

func toApplicationView(a *domain.Application) applicationView {
	return applicationView{
		ID:                a.ID.String(),
		UserID:            a.UserID.String(),
		SchemeID:          a.SchemeID,
		SchemeTitle:       a.SchemeTitle,
		Status:            string(a.Status),
		PhotoFilename:     a.PhotoFilename,
		PhotoUploaded:     a.PhotoUploaded,
		Documents:         toDocumentsView(a.Documents),
		DocumentsUploaded: a.DocumentsUploaded,
		Remarks:           a.Remarks,
		ApplicationDate:   a.ApplicationDate,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toApplicationViews(apps []*domain.Application) []applicationView {
	views := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, toApplicationView(a))
	}
	return views
}

func toOwnedApplicationViews(apps []*domain.ApplicationWithOwner) []applicationView {
	views := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		v := toApplicationView(&a.Application)
		v.OwnerName = a.OwnerName
		v.OwnerEmail = a.OwnerEmail
		views = append(views, v)
	}
	return views
}

func toSchemeView(s *domain.Scheme) schemeView {
	return schemeView{
		ID:               s.ExternalID,
		Title:            s.Title,
		Description:      s.Description,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		FeeDate:          s.FeeDate,
		CorrectionWindow: s.CorrectionWindow,
		Category:         s.Category,
		Priority:         s.Priority,
		LastUpdated:      s.LastUpdated,
		Status:           string(s.Status),
	}
}

func toSchemeViews(schemes []*domain.Scheme) []schemeView {
	views := make([]schemeView, 0, len(schemes))
	for _, s := range schemes {
		views = append(views, toSchemeView(s))
	}
	return views
}
