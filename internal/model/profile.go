package model

// CompanyProfile 企业档案，每个用户一份，生成前必须存在
type CompanyProfile struct {
	OwnerID     string   `json:"owner_id" bson:"owner_id"`
	Name        string   `json:"name" bson:"name"`
	Industry    string   `json:"industry" bson:"industry"`
	Tone        string   `json:"tone" bson:"tone"`
	Description string   `json:"description" bson:"description"`
	Keywords    []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
}
