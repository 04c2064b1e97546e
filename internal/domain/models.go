package domain

import "time"

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	ChineseName *string   `json:"chinese_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Shop struct {
	ID        int64     `json:"id"`
	ShopName  string    `json:"shop_name"`
	BrandName *string   `json:"brand_name,omitempty"`
	ShopURL   string    `json:"shop_url"`
	Operator  *string   `json:"operator,omitempty"`
	ShopType  string    `json:"shop_type"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shop type vocabulary: own shops vs tracked competitor shops.
const (
	ShopTypeOwn        = "自有"
	ShopTypeCompetitor = "竞品"
)

type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuditEntry struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Username  *string   `json:"username,omitempty"`
	Action    string    `json:"action"`
	Resource  *string   `json:"resource,omitempty"`
	Details   *string   `json:"details,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	LogType   string    `json:"log_type"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Audit log types.
const (
	LogTypeUser     = "user"
	LogTypeSystem   = "system"
	LogTypeSecurity = "security"
)

// Audit log levels.
const (
	LevelDebug    = "debug"
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelError    = "error"
	LevelCritical = "critical"
)
