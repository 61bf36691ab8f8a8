package api

// Employee resource paths, relative to the backend base URL.
const (
	PathEmployeeList   = "/employee/list"
	PathEmployeeDetail = "/employee/detail"
	PathEmployeeAdd    = "/employee/add"
	PathEmployeeUpdate = "/employee/update"
	PathEmployeeDelete = "/employee/delete"
)
