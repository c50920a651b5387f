// Package command sequences interaction steps and commits their outcome
// as one document transaction.
//
// A Multistep runs its steps strictly in order: step N+1 starts only after
// step N accepted a result. When a step is cancelled the partial results
// are dropped and nothing is committed. After the last step the command
// derives one mutation from the accumulated results and applies it inside
// document.Transact, so a failure leaves the document untouched and a
// success is one undo step.
//
// The derivation is chosen at construction:
//
//	command.Create(creator)         // insert kernel geometry as a new node
//	command.Transformed(transformer) // premultiply a matrix onto the selection
//	command.New(operation)           // any other mutation (booleans, delete)
package command
