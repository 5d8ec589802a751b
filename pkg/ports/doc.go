/*
Package ports defines the driven ports (interfaces) for the Concierge engine.

These interfaces decouple the dialog core from external implementations,
allowing the engine to work with various intent models, storage backends and
collaborator services.

# Key Interfaces

  - IntentModel: Produces a (label, confidence) prediction for a message.
  - Authenticator: Login/registration collaborator consumed by the auth sub-flow.
  - FlightSearcher: Flight search collaborator consumed by the booking flow.
  - Booker: Booking creation/lookup collaborator.
  - SessionStore: Persists conversation Snapshots for stop & resume.
  - DistributedLocker: Coordinates session access across replicas.
*/
package ports
