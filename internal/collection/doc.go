// Package collection holds the pure ordering algorithms the entity store is
// built on:
//
//   - Merge folds a batch of entities into an ordered collection by identity.
//     Existing entries keep their position and take the batch value; entries
//     with new identities are appended in batch order.
//   - Move relocates one entity to the position currently held by another,
//     with standard array-move semantics.
//
// Both functions are generic over the element type and take a key function
// that returns the identity of an element. Neither mutates its input.
//
// Example:
//
//	merged := collection.Merge(current, scanned, v1alpha1.ContainerKey)
//	reordered, moved := collection.Move(merged, "a", "d", v1alpha1.ContainerKey)
package collection
