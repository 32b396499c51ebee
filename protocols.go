package spookyq

// Prebuilt circuits for the two entanglement demonstrations the simulator
// grew out of: Bell-pair creation and single-qubit teleportation.

// BellPairCircuit prepares the Φ+ Bell state on two qubits and measures
// both: H on qubit 0 to create superposition, then CNOT to entangle.
// Sampled counts concentrate on "00" and "11".
func BellPairCircuit() *Circuit {
	c, _ := New(2, 2)
	c.H(0)
	c.CX(0, 1)
	c.Barrier()
	c.Measure(0, 0)
	c.Measure(1, 1)
	return c
}

// TeleportationCircuit builds the full teleportation protocol:
//
//	q0 — message qubit, prepared with RY(messageAngle)
//	q1 — sender's half of the entangled pair
//	q2 — receiver's half, the destination
//
// The sender's Bell measurement lands in classical bits 0 and 1; the
// receiver's X and Z corrections are conditioned on those bits. After a
// trial runs, q2 carries the message state exactly.
func TeleportationCircuit(messageAngle float64) *Circuit {
	c, _ := New(3, 2)
	addMessageState(c, 0, messageAngle)
	addEntangledPair(c, 1, 2)
	addBellMeasurementBasis(c, 0, 1)
	c.Measure(0, 0)
	c.Measure(1, 1)
	c.Barrier()
	c.ConditionalX(1, 1, 2)
	c.ConditionalZ(0, 1, 2)
	return c
}

// TeleportationVerifyCircuit is the measurement-free variant used for
// statevector verification, with the classical corrections replaced by
// their coherent equivalents (CNOT for the X correction, H·CNOT·H for the
// Z correction). By deferred measurement the final joint state factors into
// the two sender qubits times the message state on q2.
func TeleportationVerifyCircuit(messageAngle float64) *Circuit {
	c, _ := New(3, 0)
	addMessageState(c, 0, messageAngle)
	addEntangledPair(c, 1, 2)
	addBellMeasurementBasis(c, 0, 1)
	c.Barrier()
	c.CX(1, 2)
	c.H(2)
	c.CX(0, 2)
	c.H(2)
	return c
}

// addMessageState prepares an arbitrary superposition on one qubit via a
// Y rotation: cos(θ/2)|0> + sin(θ/2)|1>.
func addMessageState(c *Circuit, q int, theta float64) {
	c.RY(theta, q)
	c.Barrier()
}

// addEntangledPair entangles two qubits into a Bell pair.
func addEntangledPair(c *Circuit, a, b int) {
	c.H(a)
	c.CX(a, b)
	c.Barrier()
}

// addBellMeasurementBasis rotates the message and sender qubits into the
// Bell basis so the following measurements implement a Bell measurement.
func addBellMeasurementBasis(c *Circuit, msg, ent int) {
	c.CX(msg, ent)
	c.H(msg)
	c.Barrier()
}
