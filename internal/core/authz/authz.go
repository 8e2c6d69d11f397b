// Package authz holds the single authorization policy shared by the access
// gate, route middleware and services.
//
// Authorize must be fed an Identity whose role came from a fresh directory
// read. Roles cached in session tokens are only good for rendering.
package authz

import "github.com/numerologyhub/site-api/internal/core/domain"

type Resource string

const (
	Admin         Resource = "admin"
	Profile       Resource = "profile"
	Orders        Resource = "orders"
	Catalog       Resource = "catalog"
	Contacts      Resource = "contacts"
	SampleReports Resource = "sample_reports"
	Uploads       Resource = "uploads"
	Stats         Resource = "stats"
)

type Action string

const (
	Access  Action = "access"
	Read    Action = "read"
	List    Action = "list"
	ListAll Action = "list_all"
	Create  Action = "create"
	Update  Action = "update"
	Delete  Action = "delete"
	Lookup  Action = "lookup"
	Cancel  Action = "cancel"
)

type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

func (d Decision) Allowed() bool { return bool(d) }

func (d Decision) String() string {
	if d {
		return "allow"
	}
	return "deny"
}

type audience int

const (
	anyone audience = iota
	authenticated
	adminOnly
)

type rule struct {
	resource Resource
	action   Action
}

var policy = map[rule]audience{
	{Admin, Access}: adminOnly,
	{Stats, Read}:   adminOnly,

	{Profile, Access}: authenticated,
	{Profile, Read}:   authenticated,
	{Profile, Update}: authenticated,

	{Orders, Create}:  anyone,
	{Orders, Lookup}:  anyone,
	{Orders, List}:    authenticated,
	{Orders, Read}:    authenticated,
	{Orders, Cancel}:  authenticated,
	{Orders, ListAll}: adminOnly,

	{Catalog, Read}:    anyone,
	{Catalog, List}:    anyone,
	{Catalog, ListAll}: adminOnly,
	{Catalog, Create}:  adminOnly,
	{Catalog, Update}:  adminOnly,
	{Catalog, Delete}:  adminOnly,

	{Contacts, Create}: anyone,
	{Contacts, List}:   adminOnly,
	{Contacts, Update}: adminOnly,
	{Contacts, Delete}: adminOnly,

	{SampleReports, Create}: anyone,
	{SampleReports, List}:   adminOnly,
	{SampleReports, Delete}: adminOnly,

	{Uploads, Create}: authenticated,
}

// Authorize decides whether identity may perform action on resource. A nil
// identity is anonymous. Pairs missing from the policy are denied.
func Authorize(identity *domain.Identity, resource Resource, action Action) Decision {
	aud, ok := policy[rule{resource, action}]
	if !ok {
		return Deny
	}

	switch aud {
	case anyone:
		return Allow
	case authenticated:
		return Decision(identity != nil && identity.SubjectID != "")
	case adminOnly:
		return Decision(identity.IsAdmin())
	}
	return Deny
}
