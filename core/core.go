// Package core has the service logic behind the dogs and defects endpoints.
package core
