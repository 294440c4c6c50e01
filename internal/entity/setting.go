package entity

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Setting keys for the two singleton configuration rows.
const (
	SettingBankTransferInfo = "bank_transfer_info"
	SettingSizeGuide        = "size_guide"
)

// Setting is a key-value row holding one logical configuration object as a
// JSON blob (bank transfer info or the size guide).
type Setting struct {
	bun.BaseModel `bun:"table:settings,alias:s"`

	ID        int64           `bun:",pk,autoincrement"`
	Key       string          `bun:"key"`
	Value     json.RawMessage `bun:"value,type:jsonb"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero"`
}

// BankTransferInfo holds the payment instructions shown at checkout.
type BankTransferInfo struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// SizeGuideRow maps one garment size to its body measurements. Shoulder is
// populated for adult rows, Age for kids rows.
type SizeGuideRow struct {
	Size     string `json:"size"`
	Chest    string `json:"chest"`
	Length   string `json:"length"`
	Shoulder string `json:"shoulder,omitempty"`
	Age      string `json:"age,omitempty"`
}

// SizeGuide holds the ordered adult and kids measurement tables.
type SizeGuide struct {
	Adult []SizeGuideRow `json:"adult"`
	Kids  []SizeGuideRow `json:"kids"`
}
