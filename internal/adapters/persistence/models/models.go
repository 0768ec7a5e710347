package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Reference tables
// ============================================================

// RoomType represents room_types table
type RoomType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:16;not null" json:"name"`
}

func (RoomType) TableName() string {
	return "room_types"
}

// Faculty represents faculties table
type Faculty struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Abbreviation string `gorm:"size:4;uniqueIndex;not null" json:"abbreviation"`
	Name         string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

func (Faculty) TableName() string {
	return "faculties"
}

// Workplace represents workplaces table
type Workplace struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Abbreviation string `gorm:"size:8;uniqueIndex;not null" json:"abbreviation"`
	Name         string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	FacultyID    *uint  `json:"faculty_id"`

	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

func (Workplace) TableName() string {
	return "workplaces"
}

// AuthorizationOrigin represents authorization_origins table.
// Rows are seeded in ascending trust order; the priority ranking relies on
// higher ids outranking lower ones.
type AuthorizationOrigin struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:32;uniqueIndex;not null" json:"name"`
}

func (AuthorizationOrigin) TableName() string {
	return "authorization_origins"
}

// Origin ids used by the seeder. OriginAdmin is the default for new
// authorizations.
const (
	OriginAdmin     uint = 1
	OriginDeansWrit uint = 2
	OriginRectorate uint = 3
)

// ============================================================
// Main tables
// ============================================================

// Room represents rooms table
type Room struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:8;uniqueIndex;not null" json:"name"`
	Floor     int    `gorm:"not null;index" json:"floor"`
	TypeID    *uint  `json:"type_id"`
	FacultyID *uint  `json:"faculty_id"`
	// BorrowingsCount is a monotonic usage counter, incremented on every
	// new borrowing of any key in the room. Listings use it as a
	// popularity ordering.
	BorrowingsCount int `gorm:"not null;default:0" json:"borrowings_count"`

	Type           *RoomType       `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Faculty        *Faculty        `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Keys           []Key           `gorm:"foreignKey:RoomID" json:"keys,omitempty"`
	Authorizations []Authorization `gorm:"foreignKey:RoomID" json:"authorizations,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// Key classes. Anything nonzero is a special/master key and is excluded
// from ordinary availability checks.
const (
	KeyClassOrdinary = 0
	KeyClassMaster   = 1
)

// Key represents keys table
type Key struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	RegistrationNumber int  `gorm:"not null" json:"registration_number"`
	RoomID             uint `gorm:"not null;index" json:"room_id"`
	KeyClass           int  `gorm:"not null;default:0" json:"key_class"`

	Room       *Room       `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Borrowings []Borrowing `gorm:"foreignKey:KeyID" json:"borrowings,omitempty"`
}

func (Key) TableName() string {
	return "keys"
}

// IsBorrowed reports whether the key has an open borrowing. Requires
// Borrowings to be loaded.
func (k *Key) IsBorrowed() bool {
	for _, b := range k.Borrowings {
		if b.Returned == nil {
			return true
		}
	}
	return false
}

// AuthorizedPerson represents authorized_persons table
type AuthorizedPerson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Firstname   string    `gorm:"size:64;not null" json:"firstname"`
	Surname     string    `gorm:"size:64;not null" json:"surname"`
	WorkplaceID *uint     `json:"workplace_id"`
	Created     time.Time `gorm:"autoCreateTime" json:"created"`

	Workplace      *Workplace      `gorm:"foreignKey:WorkplaceID" json:"workplace,omitempty"`
	Authorizations []Authorization `gorm:"foreignKey:PersonID" json:"authorizations,omitempty"`
}

func (AuthorizedPerson) TableName() string {
	return "authorized_persons"
}

// FullName returns "Firstname Surname".
func (p *AuthorizedPerson) FullName() string {
	return p.Firstname + " " + p.Surname
}

// Authorization represents authorizations table. Authorizations are never
// hard-deleted; Invalidate moves the expiration to now so borrowing history
// stays referentially intact.
type Authorization struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PersonID   uint      `gorm:"not null;index" json:"person_id"`
	RoomID     uint      `gorm:"not null;index" json:"room_id"`
	OriginID   uint      `gorm:"not null" json:"origin_id"`
	Created    time.Time `gorm:"autoCreateTime" json:"created"`
	Expiration time.Time `gorm:"not null" json:"expiration"`

	Person     *AuthorizedPerson    `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Room       *Room                `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Origin     *AuthorizationOrigin `gorm:"foreignKey:OriginID" json:"origin,omitempty"`
	Borrowings []Borrowing          `gorm:"foreignKey:AuthorizationID" json:"borrowings,omitempty"`
}

func (Authorization) TableName() string {
	return "authorizations"
}

// IsValid reports whether the authorization has not expired.
func (a *Authorization) IsValid(now time.Time) bool {
	return a.Expiration.After(now)
}

// Borrowing represents borrowings table. A key is borrowed iff it has a
// borrowing with returned == NULL; at most one such row may exist per key.
type Borrowing struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	KeyID           uint       `gorm:"not null;index" json:"key_id"`
	AuthorizationID uint       `gorm:"not null;index" json:"authorization_id"`
	Borrowed        time.Time  `gorm:"not null" json:"borrowed"`
	Returned        *time.Time `gorm:"index" json:"returned"`

	Key           *Key           `gorm:"foreignKey:KeyID" json:"key,omitempty"`
	Authorization *Authorization `gorm:"foreignKey:AuthorizationID" json:"authorization,omitempty"`
}

func (Borrowing) TableName() string {
	return "borrowings"
}

// IsOpen reports whether the key has not been returned yet.
func (b *Borrowing) IsOpen() bool {
	return b.Returned == nil
}

// ============================================================
// Login system
// ============================================================

// User represents users table
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all ledger tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Reference tables
		&RoomType{},
		&Faculty{},
		&Workplace{},
		&AuthorizationOrigin{},
		// Main tables
		&Room{},
		&Key{},
		&AuthorizedPerson{},
		&Authorization{},
		&Borrowing{},
		// Login system
		&User{},
		&RefreshToken{},
	)
}
