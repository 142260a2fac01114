package competitionservice

import "github.com/festrack/festrack/app/shared/sharedtypes"

// pointsForPosition maps a ranked position to raw points under the category's
// scoring table. General programs pay 10/6/3; hs and hss pay 5/3/1, which is
// also the fallback for anything unrecognized.
func pointsForPosition(category sharedtypes.Category, position int) int {
	switch category {
	case sharedtypes.CategoryGeneral:
		switch position {
		case 1:
			return 10
		case 2:
			return 6
		case 3:
			return 3
		}
		return 0
	case sharedtypes.CategoryHS, sharedtypes.CategoryHSS:
		switch position {
		case 1:
			return 5
		case 2:
			return 3
		case 3:
			return 1
		}
		return 0
	default:
		switch position {
		case 1:
			return 5
		case 2:
			return 3
		case 3:
			return 1
		}
		return 0
	}
}
