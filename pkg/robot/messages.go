package robot

// Status lines returned by Tick.
const (
	MsgOff                = "ERROR: Robot is off"
	MsgCharging           = "ERROR: Robot is charging"
	MsgDockingInProgress  = "ERROR: Docking in progress"
	MsgRecovered          = "OK: Recovered to IDLE"
	MsgCannotRecover      = "ERROR: Cannot recover (low battery)"
	MsgDocked             = "Docked: charging started"
	MsgChargeComplete     = "Charging complete (100%)"
	MsgTickExecuted       = "Tick executed"
	MsgInvalidCoordinates = "ERROR: Invalid coordinates"
	MsgLowBattery         = "ERROR: Low battery - please charge"
	MsgNoPathToTarget     = "ERROR: No path to target"
	MsgNoPath             = "ERROR: No path"
	MsgPlanningError      = "ERROR: Internal planning error"
	MsgObjectNotFound     = "ERROR: Object not found"
	MsgGraspFailed        = "ERROR: Grasp failed"
	MsgManipulatorError   = "ERROR: Manipulator error"
	MsgPicked             = "OK: Picked object"
	MsgCommunicatorError  = "ERROR: Communicator error"
	MsgSpoken             = "OK: Spoken"
	MsgInvalidCommand     = "ERROR: Invalid command"
	MsgAutoDock           = "AUTO: Low battery - docking to charger"
)

// Action names written to memory.
const (
	ActionNavigate = "NAVIGATE"
	ActionPick     = "PICK"
	ActionSpeak    = "SPEAK"
)

func busyMessage(verb string) string {
	return "ERROR: Cannot " + verb + ", robot is busy"
}
