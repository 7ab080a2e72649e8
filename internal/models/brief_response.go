package models

type BriefResponseStatus string // Статус заявки поставщика

const (
	DraftBriefResponse          BriefResponseStatus = "draft"
	SubmittedBriefResponse      BriefResponseStatus = "submitted"
	PendingAwardedBriefResponse BriefResponseStatus = "pending-awarded"
	AwardedBriefResponse        BriefResponseStatus = "awarded"
)

// BriefResponse представляет заявку поставщика на опубликованный бриф.
type BriefResponse struct {
	ID                       int                 `json:"id"`
	BriefID                  int                 `json:"briefId"`
	SupplierID               int                 `json:"supplierId"`
	SupplierName             string              `json:"supplierName"`
	Status                   BriefResponseStatus `json:"status"`
	EssentialRequirements    []bool              `json:"essentialRequirements,omitempty"`
	EssentialRequirementsMet *bool               `json:"essentialRequirementsMet,omitempty"`
	NiceToHaveRequirements   []bool              `json:"niceToHaveRequirements,omitempty"`
	AwardDetails             AwardDetails        `json:"awardDetails,omitempty"`
}

// AwardDetails - сведения о присуждении контракта по заявке.
type AwardDetails struct {
	Pending                  bool   `json:"pending,omitempty"`
	AwardedContractStartDate string `json:"awardedContractStartDate,omitempty"`
	AwardedContractValue     string `json:"awardedContractValue,omitempty"`
}

// MeetsAllEssentialRequirements - прошла ли заявка все обязательные требования.
func (r *BriefResponse) MeetsAllEssentialRequirements() bool {
	if r.EssentialRequirementsMet != nil {
		return *r.EssentialRequirementsMet
	}
	for _, met := range r.EssentialRequirements {
		if !met {
			return false
		}
	}
	return true
}

// NiceToHaveCount - число выполненных необязательных требований.
func (r *BriefResponse) NiceToHaveCount() int {
	count := 0
	for _, met := range r.NiceToHaveRequirements {
		if met {
			count++
		}
	}
	return count
}
