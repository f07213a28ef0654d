package request

// RegisterFabricatorRequest is the public self-registration form
type RegisterFabricatorRequest struct {
	Name               string  `json:"name"`
	Institution        string  `json:"institution"`
	PhoneNumber        string  `json:"phone_number"`
	District           string  `json:"district"`
	SubDistrict        string  `json:"sub_district"`
	Address            *string `json:"address"`
	Distributor        string  `json:"distributor"`
	TradeLicenseImgURL string  `json:"trade_license_img_url"`
	VisitingCardImgURL string  `json:"visiting_card_img_url"`
	ProfileImgURL      string  `json:"profile_img_url"`
}

// FabricatorStatusRequest is the body of PATCH ?action=status
type FabricatorStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AssignFabricatorRequest is the body of PATCH ?action=assign
type AssignFabricatorRequest struct {
	ID                      string `json:"id"`
	MarketingRepresentative string `json:"marketing_representative"`
}

// UpdateFabricatorRequest is the body of PATCH ?action=update. Absent fields
// keep their value.
type UpdateFabricatorRequest struct {
	ID                 string  `json:"id"`
	Name               *string `json:"name"`
	Institution        *string `json:"institution"`
	PhoneNumber        *string `json:"phone_number"`
	District           *string `json:"district"`
	SubDistrict        *string `json:"sub_district"`
	Address            *string `json:"address"`
	Distributor        *string `json:"distributor"`
	TradeLicenseImgURL *string `json:"trade_license_img_url"`
	VisitingCardImgURL *string `json:"visiting_card_img_url"`
	ProfileImgURL      *string `json:"profile_img_url"`
}
