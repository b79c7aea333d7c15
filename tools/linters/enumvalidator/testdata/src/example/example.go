package example

type AlertFrequency string

const (
	AlertFrequencyDaily  AlertFrequency = "dly"
	AlertFrequencyWeekly AlertFrequency = "wly"
)

type TaskType string

const (
	TaskTypeRunAlert TaskType = "run_alert"
)

type Alert struct {
	Name      string
	Frequency AlertFrequency
}

type Task struct {
	TaskType TaskType
}

func enqueue(t TaskType) {}

func bad() {
	a := &Alert{}
	a.Frequency = "dly" // want `string literal "dly" used as AlertFrequency`

	t := Task{TaskType: "run_alert"} // want `string literal "run_alert" used as TaskType`
	_ = t

	enqueue("send_email") // want `string literal "send_email" used as TaskType`
}

func good() {
	a := &Alert{}
	a.Frequency = AlertFrequencyWeekly // OK: using constant
	a.Name = "weekly digest"           // OK: plain string field

	t := Task{TaskType: TaskTypeRunAlert}
	_ = t

	enqueue(TaskTypeRunAlert)

	if a.Frequency == "" { // OK: zero value
		a.Frequency = AlertFrequencyDaily
	}
}

func alsoGood() {
	// OK: variable, not literal
	freq := AlertFrequencyDaily
	a := &Alert{Frequency: freq}
	_ = a
}
