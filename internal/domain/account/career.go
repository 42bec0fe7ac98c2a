package account

type Career struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	InstitutionID uint         `gorm:"index;not null;column:institution_id" json:"institution_id"`
	Institution   *Institution `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstitutionID;references:ID" json:"-"`
	Name          string       `gorm:"not null;size:255;column:name" json:"name"`
}

func (Career) TableName() string { return "career" }
