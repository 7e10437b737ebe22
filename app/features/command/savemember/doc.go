// Package savemember implements the Save Member use case.
//
// A member may be linked to an identity of the surrounding system through UserRef.
// When no name is entered for a linked member, the display name of the identity is stored instead.
// Free-text fields are stripped of markup before they are stored.
package savemember
