package keymap

import (
	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/mouse"
)

// DefaultCatalog returns the built-in action catalog. Handlers are not
// bound; the application binds them by handler ID at startup.
func DefaultCatalog() *Catalog {
	return MustCatalog(DefaultActions()...)
}

// DefaultActions returns the built-in actions in catalog order.
func DefaultActions() []Action {
	return []Action{
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseManufacture", "Manufacture", Press(key.KeyF1)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseResearch", "Research", Press(key.KeyF2)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseBuild", "Build", Press(key.KeyF3)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseDesign", "Design", Press(key.KeyF4)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseIntelligence", "Intelligence Display", Press(key.KeyF5)),
		entry(ContextAlwaysActive, StatusAlwaysActiveExclusive, "ChooseCommand", "Commanders", Press(key.KeyF6)),
		entry(ContextGameplay, StatusAssignable, "QuickSave", "QuickSave", Press(key.KeyF7)),
		entry(ContextGameplay, StatusAssignable, "ToggleRadar", "Toggle Radar", With(key.KeyLShift, key.KeyF7)),
		entry(ContextGameplay, StatusAssignable, "QuickLoad", "QuickLoad", Press(key.KeyF8)),
		entry(ContextGameplay, StatusAssignable, "ToggleConsole", "Toggle Console Display", With(key.KeyLShift, key.KeyF8)),
		entry(ContextGameplay, StatusAssignable, "ToggleEnergyBars", "Toggle Damage Bars On/Off", Press(key.KeyF9)),
		entry(ContextBackground, StatusAlwaysActiveSilent, "ScreenDump", "Take Screen Shot", Press(key.KeyF10)),
		entry(ContextGameplay, StatusAssignable, "ToggleFormationSpeedLimiting", "Toggle Formation Speed Limiting", Press(key.KeyF11)),
		entry(ContextGameplay, StatusAssignable, "MoveToLastMessagePos", "View Location of Previous Message", Press(key.KeyF12)),
		entry(ContextGameplay, StatusAssignable, "ToggleSensorDisplay", "Toggle Sensor display", With(key.KeyLShift, key.KeyF12)),

		// Assign groups
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_0", "Assign Group 0", With(key.KeyLCtrl, key.Key0)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_1", "Assign Group 1", With(key.KeyLCtrl, key.Key1)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_2", "Assign Group 2", With(key.KeyLCtrl, key.Key2)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_3", "Assign Group 3", With(key.KeyLCtrl, key.Key3)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_4", "Assign Group 4", With(key.KeyLCtrl, key.Key4)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_5", "Assign Group 5", With(key.KeyLCtrl, key.Key5)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_6", "Assign Group 6", With(key.KeyLCtrl, key.Key6)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_7", "Assign Group 7", With(key.KeyLCtrl, key.Key7)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_8", "Assign Group 8", With(key.KeyLCtrl, key.Key8)),
		entry(ContextGameplay, StatusAssignable, "AssignGrouping_9", "Assign Group 9", With(key.KeyLCtrl, key.Key9)),

		// Add to group
		entry(ContextGameplay, StatusAssignable, "AddGrouping_0", "Add to Group 0", With(key.KeyLShift, key.Key0)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_1", "Add to Group 1", With(key.KeyLShift, key.Key1)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_2", "Add to Group 2", With(key.KeyLShift, key.Key2)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_3", "Add to Group 3", With(key.KeyLShift, key.Key3)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_4", "Add to Group 4", With(key.KeyLShift, key.Key4)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_5", "Add to Group 5", With(key.KeyLShift, key.Key5)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_6", "Add to Group 6", With(key.KeyLShift, key.Key6)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_7", "Add to Group 7", With(key.KeyLShift, key.Key7)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_8", "Add to Group 8", With(key.KeyLShift, key.Key8)),
		entry(ContextGameplay, StatusAssignable, "AddGrouping_9", "Add to Group 9", With(key.KeyLShift, key.Key9)),

		// Remove from group
		entry(ContextGameplay, StatusAssignable, "RemoveFromGrouping", "Remove from current Group"),

		// Select groups, jumping to the group if it is already selected
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_0", "Select Group 0", Press(key.Key0)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_1", "Select Group 1", Press(key.Key1)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_2", "Select Group 2", Press(key.Key2)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_3", "Select Group 3", Press(key.Key3)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_4", "Select Group 4", Press(key.Key4)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_5", "Select Group 5", Press(key.Key5)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_6", "Select Group 6", Press(key.Key6)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_7", "Select Group 7", Press(key.Key7)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_8", "Select Group 8", Press(key.Key8)),
		entry(ContextGameplay, StatusAssignable, "SelectGrouping_9", "Select Group 9", Press(key.Key9)),

		// Select commanders
		entry(ContextGameplay, StatusAssignable, "SelectCommander_0", "Select Commander 0", With(key.KeyLAlt, key.Key0)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_1", "Select Commander 1", With(key.KeyLAlt, key.Key1)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_2", "Select Commander 2", With(key.KeyLAlt, key.Key2)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_3", "Select Commander 3", With(key.KeyLAlt, key.Key3)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_4", "Select Commander 4", With(key.KeyLAlt, key.Key4)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_5", "Select Commander 5", With(key.KeyLAlt, key.Key5)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_6", "Select Commander 6", With(key.KeyLAlt, key.Key6)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_7", "Select Commander 7", With(key.KeyLAlt, key.Key7)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_8", "Select Commander 8", With(key.KeyLAlt, key.Key8)),
		entry(ContextGameplay, StatusAssignable, "SelectCommander_9", "Select Commander 9", With(key.KeyLAlt, key.Key9)),

		// Multiplayer
		entry(ContextBackground, StatusAssignable, "addMultiMenu", "Multiplayer Options / Alliance dialog", Press(key.KeyKPEnter)),

		// Camera movement, zoom and rotation
		entry(ContextGameplay, StatusAssignable, "CameraUp", "Move Camera Up", Hold(key.KeyUp)),
		entry(ContextGameplay, StatusAssignable, "CameraDown", "Move Camera Down", Hold(key.KeyDown)),
		entry(ContextGameplay, StatusAssignable, "CameraRight", "Move Camera Right", Hold(key.KeyRight)),
		entry(ContextGameplay, StatusAssignable, "CameraLeft", "Move Camera Left", Hold(key.KeyLeft)),
		entry(ContextGameplay, StatusAssignable, "SeekNorth", "Snap View to North", Press(key.KeyBackspace)),
		entry(ContextGameplay, StatusAssignable, "ToggleCamera", "Toggle Tracking Camera", Press(key.KeySpace)),
		entry(ContextBackground, StatusAlwaysActiveSilent, "addInGameOptions", "Display In-Game Options", Press(key.KeyEscape)),
		entry(ContextRadar, StatusAssignable, "RadarZoomOut", "Zoom Radar Out", Press(key.KeyMinus), wheel(mouse.ButtonWheelDown)),
		entry(ContextRadar, StatusAssignable, "RadarZoomIn", "Zoom Radar In", Press(key.KeyEquals), wheel(mouse.ButtonWheelUp)),
		entry(ContextGameplay, StatusAssignable, "ZoomIn", "Zoom In", Hold(key.KeyKPPlus), wheel(mouse.ButtonWheelUp)),
		entry(ContextGameplay, StatusAssignable, "ZoomOut", "Zoom Out", Hold(key.KeyKPMinus), wheel(mouse.ButtonWheelDown)),
		entry(ContextGameplay, StatusAssignable, "PitchForward", "Pitch Forward", Hold(key.KeyKP2)),
		entry(ContextGameplay, StatusAssignable, "RotateLeft", "Rotate Left", Hold(key.KeyKP4)),
		entry(ContextGameplay, StatusAssignable, "ResetPitch", "Reset Pitch", Hold(key.KeyKP5)),
		entry(ContextGameplay, StatusAssignable, "RotateRight", "Rotate Right", Hold(key.KeyKP6)),
		entry(ContextGameplay, StatusAssignable, "PitchBack", "Pitch Back", Hold(key.KeyKP8)),
		entry(ContextGameplay, StatusAssignable, "RightOrderMenu", "Orders Menu", Press(key.KeyKP0)),
		entry(ContextGameplay, StatusAssignable, "SlowDown", "Decrease Game Speed", With(key.KeyLCtrl, key.KeyMinus)),
		entry(ContextGameplay, StatusAssignable, "SpeedUp", "Increase Game Speed", With(key.KeyLCtrl, key.KeyEquals)),
		entry(ContextGameplay, StatusAssignable, "NormalSpeed", "Reset Game Speed", With(key.KeyLCtrl, key.KeyBackspace)),
		entry(ContextGameplay, StatusAssignable, "FaceNorth", "View North", With(key.KeyLCtrl, key.KeyUp)),
		entry(ContextGameplay, StatusAssignable, "FaceSouth", "View South", With(key.KeyLCtrl, key.KeyDown)),
		entry(ContextGameplay, StatusAssignable, "FaceEast", "View East", With(key.KeyLCtrl, key.KeyLeft)),
		entry(ContextGameplay, StatusAssignable, "FaceWest", "View West", With(key.KeyLCtrl, key.KeyRight)),
		entry(ContextGameplay, StatusAssignable, "JumpToResourceExtractor", "View next Oil Derrick", Press(key.KeyKPStar)),
		entry(ContextGameplay, StatusAssignable, "JumpToRepairUnits", "View next Repair Unit"),
		entry(ContextGameplay, StatusAssignable, "JumpToConstructorUnits", "View next Truck"),
		entry(ContextGameplay, StatusAssignable, "JumpToSensorUnits", "View next Sensor Unit"),
		entry(ContextGameplay, StatusAssignable, "JumpToCommandUnits", "View next Commander"),
		entry(ContextGameplay, StatusAssignable, "ToggleOverlays", "Toggle Overlays", Press(key.KeyTab)),
		entry(ContextGameplay, StatusAssignable, "ToggleConsoleDrop", "Toggle Console History", Press(key.KeyBackquote)),
		entry(ContextGameplay, StatusAssignable, "ToggleTeamChat", "Toggle Team Chat History", With(key.KeyLCtrl, key.KeyBackquote)),
		entry(ContextGameplay, StatusAssignable, "RotateBuildingClockwise", "Rotate Building Clockwise"),
		entry(ContextGameplay, StatusAssignable, "RotateBuildingAnticlockwise", "Rotate Building Anticlockwise"),

		// Unit orders and views, single keys
		entry(ContextGameplay, StatusAssignable, "CentreOnBase", "Center View on HQ", Press(key.KeyB)),
		entry(ContextGameplay, StatusAssignable, "SetDroidAttackCease", "Hold Fire", Press(key.KeyC)),
		entry(ContextGameplay, StatusAssignable, "JumpToUnassignedUnits", "View Unassigned Units", Press(key.KeyD)),
		entry(ContextGameplay, StatusAssignable, "SetDroidAttackReturn", "Return Fire", Press(key.KeyE)),
		entry(ContextGameplay, StatusAssignable, "SetDroidAttackAtWill", "Fire at Will", Press(key.KeyF)),
		entry(ContextGameplay, StatusAssignable, "SetDroidMoveGuard", "Guard Position", Press(key.KeyG)),
		entry(ContextGameplay, StatusAssignable, "SetDroidReturnToBase", "Return to HQ", With(key.KeyLShift, key.KeyH)),
		entry(ContextGameplay, StatusAssignable, "SetDroidOrderHold", "Hold Position", Press(key.KeyH)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRangeOptimum", "Optimum Range", Press(key.KeyI)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRangeShort", "Short Range", Press(key.KeyO)),
		entry(ContextGameplay, StatusAssignable, "SetDroidMovePursue", "Pursue", Press(key.KeyP)),
		entry(ContextGameplay, StatusAssignable, "SetDroidMovePatrol", "Patrol", Press(key.KeyQ)),
		entry(ContextGameplay, StatusAssignable, "SetDroidGoForRepair", "Return For Repair", Press(key.KeyR)),
		entry(ContextGameplay, StatusAssignable, "SetDroidOrderStop", "Stop Droid", Press(key.KeyS)),
		entry(ContextGameplay, StatusAssignable, "SetDroidGoToTransport", "Go to Transport", Press(key.KeyT)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRangeLong", "Long Range", Press(key.KeyU)),
		entry(ContextGameplay, StatusAssignable, "SendGlobalMessage", "Send Global Text Message", Press(key.KeyReturn)),
		entry(ContextGameplay, StatusAssignable, "SendTeamMessage", "Send Team Text Message", With(key.KeyLCtrl, key.KeyReturn)),
		entry(ContextGameplay, StatusAssignable, "SendGlobalQuickChat", "Send Global Quick Chat"),
		entry(ContextGameplay, StatusAssignable, "SendTeamQuickChat", "Send Team Quick Chat", With(key.KeyLShift, key.KeyReturn)),
		entry(ContextGameplay, StatusAssignable, "AddHelpBlip", "Drop a beacon", With(key.KeyLAlt, key.KeyH)),
		entry(ContextGameplay, StatusAssignable, "ToggleShadows", "Toggles shadows", With(key.KeyLAlt, key.KeyS)),
		entry(ContextGameplay, StatusAssignable, "toggleTrapCursor", "Trap cursor", With(key.KeyLAlt, key.KeyT)),
		entry(ContextRadar, StatusAssignable, "ToggleRadarTerrain", "Toggle radar terrain", With(key.KeyLCtrl, key.KeyTab)),
		entry(ContextRadar, StatusAssignable, "ToggleRadarAllyEnemy", "Toggle ally-enemy radar view", With(key.KeyLShift, key.KeyTab)),
		entry(ContextGameplay, StatusAssignable, "ShowMappings", "Show all keyboard mappings", Press(key.KeyM)),

		// Retreat levels
		entry(ContextGameplay, StatusAssignable, "SetDroidRetreatMedium", "Retreat at Medium Damage", Press(key.KeyComma)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRetreatHeavy", "Retreat at Heavy Damage", Press(key.KeyFullStop)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRetreatNever", "Do or Die!", Press(key.KeySlash)),

		// Unit selection, modifier combos
		entry(ContextGameplay, StatusAssignable, "SelectAllCombatUnits", "Select all Combat Units", With(key.KeyLCtrl, key.KeyA)),
		entry(ContextGameplay, StatusAssignable, "SelectAllCyborgs", "Select all Cyborgs", With(key.KeyLCtrl, key.KeyC)),
		entry(ContextGameplay, StatusAssignable, "SelectAllDamaged", "Select all Heavily Damaged Units", With(key.KeyLCtrl, key.KeyD)),
		entry(ContextGameplay, StatusAssignable, "SelectAllLandMildNoDamage", "Select all Land Combat Units with >50% HP and no group"),
		entry(ContextGameplay, StatusAssignable, "SelectAllHalfTracked", "Select all Half-tracks", With(key.KeyLCtrl, key.KeyF)),
		entry(ContextGameplay, StatusAssignable, "SelectAllHalfTrackedNG", "Select all Half-tracks without group", With(key.KeyLAlt, key.KeyF)),
		entry(ContextGameplay, StatusAssignable, "SelectAllHovers", "Select all Hovers", With(key.KeyLCtrl, key.KeyH)),
		entry(ContextGameplay, StatusAssignable, "SetDroidRecycle", "Return for Recycling", With(key.KeyLCtrl, key.KeyR)),
		entry(ContextGameplay, StatusAssignable, "SelectAllOnScreenUnits", "Select all Units on Screen", With(key.KeyLCtrl, key.KeyS)),
		entry(ContextGameplay, StatusAssignable, "SelectAllTracked", "Select all Tracks", With(key.KeyLCtrl, key.KeyT)),
		entry(ContextGameplay, StatusAssignable, "SelectAllTrackedNG", "Select all Tracks without group", With(key.KeyLAlt, key.KeyD)),
		entry(ContextGameplay, StatusAssignable, "SelectAllUnits", "Select EVERY unit", With(key.KeyLCtrl, key.KeyU)),
		entry(ContextGameplay, StatusAssignable, "SelectAllVTOLs", "Select all VTOLs", With(key.KeyLCtrl, key.KeyV)),
		entry(ContextGameplay, StatusAssignable, "SelectAllArmedVTOLs", "Select all fully-armed VTOLs", With(key.KeyLShift, key.KeyV)),
		entry(ContextGameplay, StatusAssignable, "SelectAllArmedVTOLsNG", "Select all fully-armed VTOLs without group", With(key.KeyLAlt, key.KeyV)),
		entry(ContextGameplay, StatusAssignable, "SelectAllWheeled", "Select all Wheels", With(key.KeyLCtrl, key.KeyW)),
		entry(ContextDebugMisc, StatusHidden, "FrameRate", "Show frame rate", With(key.KeyLCtrl, key.KeyY)),
		entry(ContextGameplay, StatusAssignable, "SelectAllSameType", "Select all units with the same components", With(key.KeyLCtrl, key.KeyZ)),

		// Unit selection, shift combos
		entry(ContextGameplay, StatusAssignable, "SelectAllCombatCyborgs", "Select all Combat Cyborgs", With(key.KeyLShift, key.KeyC)),
		entry(ContextGameplay, StatusAssignable, "SelectAllCombatCyborgsNG", "Select all Combat Cyborgs without group", With(key.KeyLAlt, key.KeyC)),
		entry(ContextGameplay, StatusAssignable, "SelectAllEngineers", "Select all Engineers", With(key.KeyLShift, key.KeyE)),
		entry(ContextGameplay, StatusAssignable, "SelectAllLandCombatUnits", "Select all Land Combat Units", With(key.KeyLShift, key.KeyG)),
		entry(ContextGameplay, StatusAssignable, "SelectAllLandCombatUnitsNG", "Select all Land Combat Units without group", With(key.KeyLAlt, key.KeyG)),
		entry(ContextGameplay, StatusAssignable, "SelectAllMechanics", "Select all Mechanics", With(key.KeyLShift, key.KeyM)),
		entry(ContextGameplay, StatusAssignable, "SelectAllTransporters", "Select all Transporters", With(key.KeyLShift, key.KeyP)),
		entry(ContextGameplay, StatusAssignable, "SelectAllRepairTanks", "Select all Repair Tanks", With(key.KeyLShift, key.KeyR)),
		entry(ContextGameplay, StatusAssignable, "SelectAllSensorUnits", "Select all Sensor Units", With(key.KeyLShift, key.KeyS)),
		entry(ContextGameplay, StatusAssignable, "SelectAllSensorUnitsNG", "Select all Sensor Units without group", With(key.KeyLAlt, key.KeyJ)),
		entry(ContextGameplay, StatusAssignable, "SelectAllTrucks", "Select all Trucks", With(key.KeyLShift, key.KeyT)),

		// Structure selection and jumping
		entry(ContextGameplay, StatusAssignable, "SelectNextFactory", "Select next Factory"),
		entry(ContextGameplay, StatusAssignable, "SelectNextResearch", "Select next Research Facility"),
		entry(ContextGameplay, StatusAssignable, "SelectNextPowerStation", "Select next Power Generator"),
		entry(ContextGameplay, StatusAssignable, "SelectNextCyborgFactory", "Select next Cyborg Factory"),
		entry(ContextGameplay, StatusAssignable, "SelectNextVtolFactory", "Select next VTOL Factory"),
		entry(ContextGameplay, StatusAssignable, "JumpNextFactory", "Jump to next Factory"),
		entry(ContextGameplay, StatusAssignable, "JumpNextResearch", "Jump to next Research Facility"),
		entry(ContextGameplay, StatusAssignable, "JumpNextPowerStation", "Jump to next Power Generator"),
		entry(ContextGameplay, StatusAssignable, "JumpNextCyborgFactory", "Jump to next Cyborg Factory"),
		entry(ContextGameplay, StatusAssignable, "JumpNextVtolFactory", "Jump to next VTOL Factory"),

		// Debug options
		unlisted(entry(ContextBackground, StatusAlwaysActiveSilent, "ToggleDebugMappings", "Toggle Debug Mappings", With(key.KeyLShift, key.KeyBackspace))),
		entry(ContextDebugMisc, StatusDebugOnly, "PrioritizeDebugMappings", "Prioritize Debug Mappings", With(key.KeyLAlt, key.KeyBackspace)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleLevelEditor", "Toggle Level Editor", With(key.KeyLAlt, key.KeyL)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleShowPath", "Toggle display of droid path", With(key.KeyLCtrl, key.KeyM)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleShowGateways", "Toggle display of gateways", With(key.KeyLCtrl, key.KeyE)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleVisibility", "Toggle visibility", Press(key.KeyV)),
		entry(ContextDebugLevelEditor, StatusDebugOnly, "RaiseTile", "Raise tile height", Hold(key.KeyW)),
		entry(ContextDebugLevelEditor, StatusDebugOnly, "LowerTile", "Lower tile height", Hold(key.KeyA)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleFog", "Toggles All fog", With(key.KeyLCtrl, key.KeyJ)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleWeather", "Trigger some weather", With(key.KeyLCtrl, key.KeyQ)),
		entry(ContextDebugLevelEditor, StatusDebugOnly, "TriFlip", "Flip terrain triangle", Press(key.KeyK)),
		entry(ContextDebugMisc, StatusDebugOnly, "PerformanceSample", "Make a performance measurement sample", With(key.KeyLCtrl, key.KeyK)),
		entry(ContextDebugMisc, StatusDebugOnly, "AllAvailable", "Make all items available", With(key.KeyLAlt, key.KeyA)),
		entry(ContextDebugHasSelection, StatusDebugOnly, "KillSelected", "Kill Selected Unit(s)", With(key.KeyLAlt, key.KeyK)),
		entry(ContextDebugMisc, StatusDebugOnly, "ToggleGodMode", "Toggle god Mode Status", With(key.KeyLCtrl, key.KeyG)),
		entry(ContextDebugMisc, StatusDebugOnly, "ChooseOptions", "Display Options Screen", With(key.KeyLCtrl, key.KeyO)),
		entry(ContextDebugMisc, StatusDebugOnly, "FinishResearch", "Complete current research", With(key.KeyLCtrl, key.KeyX)),
		entry(ContextDebugMisc, StatusDebugOnly, "RevealMapAtPos", "Reveal map at mouse position", With(key.KeyLShift, key.KeyW)),
		entry(ContextDebugHasSelection, StatusDebugOnly, "TraceObject", "Trace a game object", With(key.KeyLCtrl, key.KeyL)),

		// Hardcoded mappings
		unlisted(entry(ContextAlwaysActive, StatusAlwaysActiveSilent, "ToggleFullscreen", "Toggle fullscreen", With(key.KeyLAlt, key.KeyReturn))),
	}
}

// entry builds an action whose defaults fill the slots in order.
func entry(ctx ContextID, status Status, name, display string, combos ...Combo) Action {
	a := Action{
		Name:        name,
		DisplayName: display,
		Context:     ctx,
		Status:      status,
	}
	for i, c := range combos {
		a.Defaults = append(a.Defaults, Default{Slot: Slot(i), Combo: c})
	}
	return a
}

func unlisted(a Action) Action {
	a.Unlisted = true
	return a
}

func wheel(b mouse.Button) Combo {
	return NewCombo(key.KeyNone, input.Mouse(b), RulePressed)
}
