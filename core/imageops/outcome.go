package imageops

// ValidationResult 路径校验结果，Reason 为空表示有效
type ValidationResult struct {
	Reason    ErrorKind
	Extension string
}

// Valid 是否通过校验
func (v ValidationResult) Valid() bool {
	return v.Reason == KindNone
}

// Outcome 操作结果：成功时带结果路径，失败时带失败类型
type Outcome struct {
	succeeded  bool
	resultPath string
	message    string
	err        *OpError
}

// Success 构造成功结果
func Success(resultPath, message string) Outcome {
	return Outcome{succeeded: true, resultPath: resultPath, message: message}
}

// Failure 构造失败结果
func Failure(err *OpError) Outcome {
	return Outcome{message: err.Error(), err: err}
}

// Succeeded 操作是否成功
func (o Outcome) Succeeded() bool { return o.succeeded }

// ResultPath 结果路径，仅成功时有值
func (o Outcome) ResultPath() (string, bool) {
	if !o.succeeded {
		return "", false
	}
	return o.resultPath, true
}

// Message 可读描述
func (o Outcome) Message() string { return o.message }

// Kind 失败类型，成功时为 KindNone
func (o Outcome) Kind() ErrorKind {
	if o.err == nil {
		return KindNone
	}
	return o.err.Kind
}

// Err 失败原因，成功时为nil
func (o Outcome) Err() error {
	if o.err == nil {
		return nil
	}
	return o.err
}

// Tuple 返回 (succeeded, resultPath, message) 三元组
func (o Outcome) Tuple() (bool, string, string) {
	path, _ := o.ResultPath()
	return o.succeeded, path, o.message
}
