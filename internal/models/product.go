package models

import "time"

// ProductType - Ürün formu kodu
type ProductType string

const (
	TypeTablet     ProductType = "TAB"
	TypeSyrup      ProductType = "SYP"
	TypeCream      ProductType = "CREAM"
	TypeCapsule    ProductType = "CAP"
	TypeInjection  ProductType = "INJ"
	TypeDrops      ProductType = "DROPS"
	TypeDrip       ProductType = "DRIP"
	TypeSachet     ProductType = "SECHET"
	TypeSoap       ProductType = "SAOP"
	TypeToothpaste ProductType = "T/PASTE"
	TypeOintment   ProductType = "OINTMENT"
	TypeLotion     ProductType = "LOTION"
	TypeBabyCream  ProductType = "B/CREAM"
	TypeOther      ProductType = "OTH"
)

// ProductTypeLabels - Kod -> görünen ad eşlemesi
var ProductTypeLabels = map[ProductType]string{
	TypeTablet:     "Tablet",
	TypeSyrup:      "Şurup",
	TypeCream:      "Krem",
	TypeCapsule:    "Kapsül",
	TypeInjection:  "Enjeksiyon",
	TypeDrops:      "Damla",
	TypeDrip:       "Serum",
	TypeSachet:     "Saşe",
	TypeSoap:       "Sabun",
	TypeToothpaste: "Diş Macunu",
	TypeOintment:   "Merhem",
	TypeLotion:     "Losyon",
	TypeBabyCream:  "Bebek Kremi",
	TypeOther:      "Diğer",
}

func (t ProductType) Valid() bool {
	_, ok := ProductTypeLabels[t]
	return ok
}

func (t ProductType) Label() string {
	if l, ok := ProductTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

type Product struct {
	ID             uint          `gorm:"primaryKey"`
	Name           string        `gorm:"size:255;not null;uniqueIndex"`
	CompanyID      *uint         `gorm:"index"`
	Company        *Company      `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	FormulaID      *uint         `gorm:"index"`
	Formula        *Formula      `gorm:"foreignKey:FormulaID;constraint:OnDelete:SET NULL"`
	DistributionID *uint         `gorm:"index"`
	Distribution   *Distribution `gorm:"foreignKey:DistributionID;constraint:OnDelete:SET NULL"`
	ProductType    ProductType   `gorm:"size:10;not null"`
	AvgQty         int           `gorm:"not null"` // Hedef stok seviyesi, eksik hesabının tabanı
	PerPack        int           `gorm:"not null;default:1"`
	MarketItem     bool          `gorm:"not null;default:true"`
	Description    string        `gorm:"type:text"`
	Stocks         []Stock       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
