// Package site serves the tourism website: the home and destinations pages,
// the contact and booking forms, and the JSON endpoints used for real-time
// field checks.
//
// Each visitor is identified by a cookie and gets a private FormValidator per
// form, so error messages and the success indicator behave as they would on
// a page open in that visitor's browser. Nothing submitted is stored or sent
// anywhere.
package site
