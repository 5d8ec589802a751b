/*
Package engine implements the dialog transaction core: the polymorphic
Transaction contract, the booking and status state machines, the
authentication sub-flow, and the intent-to-transaction factory.

A transaction owns one user goal across turns. While authentication is
pending, an auth gate routes every inbound message to the nested AuthFlow;
when the sub-flow completes, the transaction's own handler resumes on the
following turn. Transactions serialize to domain.Snapshot so conversations
survive process restarts.
*/
package engine
