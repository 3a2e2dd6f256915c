// Package cli implements the interactive terminal client for the shop:
// account commands, the product catalogue and the local cart.
//
// The session token and the cart are kept in local storage and survive
// restarts. Logout only forgets the token locally; the server keeps
// accepting it until it expires.
package cli
