// Package scaling holds the depth-scaled laws for traps, treasure, seal
// discovery, monster statistics and encounter difficulty.
//
// Every function is stateless: inputs arrive as parameters and randomness
// is drawn from the caller's dice.Source in a fixed order.
package scaling
