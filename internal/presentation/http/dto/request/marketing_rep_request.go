package request

type MarketingRepRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	District    *string `json:"district"`
	SubDistrict *string `json:"sub_district"`
}

// AssignFabricatorsRequest attaches many fabricators to representative ID
type AssignFabricatorsRequest struct {
	ID          string   `json:"id"`
	Fabricators []string `json:"fabricators"`
}

// AssignDistributorsRequest attaches many distributors to representative ID
type AssignDistributorsRequest struct {
	ID           string   `json:"id"`
	Distributors []string `json:"distributors"`
}

type DistributorRequest struct {
	Name                    *string `json:"name"`
	PhoneNumber             *string `json:"phone_number"`
	Email                   *string `json:"email"`
	District                *string `json:"district"`
	SubDistrict             *string `json:"sub_district"`
	MarketingRepresentative *string `json:"marketing_representative"`
}
