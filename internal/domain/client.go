package domain

// Client is a customer of the studio
type Client struct {
	BaseModel
	Name  string  `gorm:"type:varchar(255);not null;index:idx_clients_name" json:"name"`
	Email *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone *string `gorm:"type:varchar(32)" json:"phone,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
