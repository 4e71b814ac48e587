package entity

import "time"

// User is a listed IAM user.
type User struct {
	UserName   string    `json:"user_name"`
	ARN        string    `json:"arn"`
	CreateDate time.Time `json:"create_date"`
}

// AccessKey is the metadata of one access key; the secret is never read.
type AccessKey struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PolicyKind distingue políticas inline das gerenciadas.
type PolicyKind string

const (
	PolicyInline  PolicyKind = "Inline"
	PolicyManaged PolicyKind = "Managed"
)

// Policy is a permission policy attached to a user.
type Policy struct {
	Name string     `json:"name"`
	Kind PolicyKind `json:"kind"`
}

// UserFacts são os fatos coletados para o relatório de identidade.
type UserFacts struct {
	User          User
	Groups        Fact[[]string]
	ConsoleAccess Fact[bool]
	AccessKeys    Fact[[]AccessKey]
	Policies      Fact[[]Policy]
}
