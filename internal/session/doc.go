// Package session implements the dispatch session capability.
//
// Preview records links without contacting anyone and backs dry runs.
// Assisted hands each deep link to the operator, who opens it in their
// signed-in messaging client and confirms when the composer is ready and
// again once they have pressed send.
package session
