package employee

// WouldCreateCycle reports whether setting managerID as employeeID's reporting
// manager would close a cycle in the parent-pointer tree. managerOf maps an
// employee ID to its current reporting manager ID; entries without a manager
// are simply absent.
//
// The walk is bounded by the map size, so a pre-existing cycle in stored data
// terminates instead of looping forever.
func WouldCreateCycle(employeeID, managerID string, managerOf map[string]string) bool {
	if employeeID == managerID {
		return true
	}

	current := managerID
	for steps := 0; steps <= len(managerOf); steps++ {
		next, ok := managerOf[current]
		if !ok {
			return false
		}
		if next == employeeID {
			return true
		}
		current = next
	}
	return true // walk exhausted the graph without reaching a root
}
