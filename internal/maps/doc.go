// Package maps provides the discrete-time models explored by dynmap.
//
// Every model is a small value type whose exported fields are its
// parameters, implementing [dynamo.Rule] and [dynamo.Tunable]:
//
//   - [Logistic]: x' = r·x·(1-x), the bifurcation workhorse
//   - [Drift]: linear stability with constant drift and Gaussian noise
//   - [Oscillator]: damped discrete oscillator (position, velocity)
//   - [Well]: gradient descent in a quadratic potential plus noise
//   - [Framing]: rotated and scaled vector-field flow
//
// The set of models is closed; [New] builds the default variant of a
// [Kind]. Noisy models draw from the [dynamo.Source] given to Update.
package maps
