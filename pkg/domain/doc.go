/*
Package domain contains the core domain models for the Concierge engine.

It defines the value objects exchanged between the dialog engine and its
collaborators: intents, travel classes, flights, trips, bookings, users, and
the serializable session Snapshot. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Intent: A coarse classification of a user message into a goal label.
  - Trip: A priced outbound-plus-optional-return flight pairing.
  - BookingRecord: A confirmed booking with its reference code.
  - Snapshot: The runtime snapshot of a conversation (intent, transaction
    state, collected context, optional auth sub-flow).
*/
package domain
